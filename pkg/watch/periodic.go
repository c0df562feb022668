package watch

import (
	"context"
	"time"

	"github.com/arthur-debert/dotprofile/pkg/logging"
	"github.com/jonboulle/clockwork"
)

// Periodic calls Fn every Interval until its context ends.
type Periodic struct {
	Interval time.Duration
	Clock    clockwork.Clock
	Fn       func(context.Context)
}

// Run blocks until ctx is done. An Interval of zero or less never fires.
func (p *Periodic) Run(ctx context.Context) error {
	if p.Interval <= 0 {
		<-ctx.Done()
		return nil
	}
	clock := p.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	logger := logging.GetLogger("watch.periodic")
	logger.Debug().Dur("interval", p.Interval).Msg("periodic trigger started")
	ticker := clock.NewTicker(p.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.Chan():
			p.Fn(ctx)
		}
	}
}
