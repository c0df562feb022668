package dotprofile

import (
	"context"
	"fmt"
	"time"

	"github.com/arthur-debert/dotprofile/pkg/apply"
	"github.com/arthur-debert/dotprofile/pkg/logging"
	"github.com/arthur-debert/dotprofile/pkg/ui/display"
	"github.com/arthur-debert/dotprofile/pkg/watch"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newWatchCmd(opts *globalOptions) *cobra.Command {
	var interval time.Duration

	cmd := &cobra.Command{
		Use:               "watch <profile>",
		Short:             MsgWatchShort,
		GroupID:           "core",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: profileCompletion(opts),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(opts, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("interval") {
				interval = a.cfg.Watch.ReapplyInterval
			}

			ctx, stop := signalContext(cmd)
			defer stop()
			return runWatch(ctx, a, args[0], interval)
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", 0, MsgFlagInterval)
	return cmd
}

// runWatch applies the profile once, then re-applies on file changes and,
// when interval is positive, on a timer. It returns when ctx ends.
func runWatch(ctx context.Context, a *app, profileID string, interval time.Duration) error {
	logger := logging.GetLogger("cmd.watch").With().Str("profile", profileID).Logger()

	d, err := a.source.Load(profileID)
	if err != nil {
		return err
	}

	trigger := func(t apply.Trigger) func(context.Context) {
		return func(ctx context.Context) {
			rep, err := a.orch.Apply(ctx, d.ID, apply.Options{Trigger: t})
			if err != nil {
				logger.Error().Err(err).Msg("apply failed")
			}
			if rep.Outcome == apply.OutcomeSuppressed {
				logger.Debug().Str("trigger", string(t)).Msg("skipped, applied moments ago")
				return
			}
			if rerr := a.renderer.RenderResult(display.NewApplyResult(rep)); rerr != nil {
				logger.Warn().Err(rerr).Msg("could not render result")
			}
		}
	}

	updates, unsubscribe := a.orch.Publisher().Subscribe()
	defer unsubscribe()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		for {
			select {
			case <-gctx.Done():
				return nil
			case snap, ok := <-updates:
				if !ok {
					return nil
				}
				logger.Debug().
					Str("state", string(snap.State)).
					Bool("in_flight", snap.InFlight).
					Str("run", snap.RunID).
					Msg("state changed")
			}
		}
	})

	w := watch.NewWatcher(d.Dir, a.cfg.Watch.Debounce, trigger(apply.TriggerWatch))
	g.Go(func() error { return w.Run(gctx) })

	periodic := &watch.Periodic{Interval: interval, Fn: trigger(apply.TriggerPeriodic)}
	g.Go(func() error { return periodic.Run(gctx) })

	g.Go(func() error {
		select {
		case <-w.Ready():
		case <-gctx.Done():
			return nil
		}
		_ = a.renderer.RenderMessage(fmt.Sprintf(MsgWatching, d.Dir))
		trigger(apply.TriggerManual)(gctx)
		return nil
	})

	err = g.Wait()
	a.orch.Cancel()
	_ = a.renderer.RenderMessage(fmt.Sprintf(MsgWatchStopped, d.Dir))
	return err
}
