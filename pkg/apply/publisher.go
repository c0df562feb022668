package apply

import (
	"sync"
	"time"

	"github.com/arthur-debert/dotprofile/pkg/hotkey"
	"github.com/arthur-debert/dotprofile/pkg/types"
)

// Snapshot is the state exposed to the presentation layer.
type Snapshot struct {
	Profiles      []types.ProfileDescriptor
	ActiveProfile string
	InFlight      bool
	State         State
	RunID         string
	// RunProfile is the profile of the run State belongs to
	RunProfile  string
	LastApplied time.Time
	Hotkeys     []hotkey.Binding
	// Version increases with every published change
	Version uint64
}

// Publisher holds the latest Snapshot and fans changes out to
// subscribers. Slow subscribers only ever see the newest snapshot.
type Publisher struct {
	mu      sync.Mutex
	current Snapshot
	subs    map[int]chan Snapshot
	nextID  int
}

// NewPublisher returns a publisher in the Idle state.
func NewPublisher() *Publisher {
	return &Publisher{
		current: Snapshot{State: StateIdle},
		subs:    make(map[int]chan Snapshot),
	}
}

// Snapshot returns a copy of the current state.
func (p *Publisher) Snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current.clone()
}

// Subscribe returns a channel that receives each new snapshot and a
// function that ends the subscription. The channel starts with the
// current snapshot.
func (p *Publisher) Subscribe() (<-chan Snapshot, func()) {
	p.mu.Lock()
	defer p.mu.Unlock()

	id := p.nextID
	p.nextID++
	ch := make(chan Snapshot, 1)
	ch <- p.current.clone()
	p.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			p.mu.Lock()
			defer p.mu.Unlock()
			delete(p.subs, id)
			close(ch)
		})
	}
}

// SetProfiles publishes the current profile list.
func (p *Publisher) SetProfiles(ds []types.ProfileDescriptor) {
	p.update(func(s *Snapshot) { s.Profiles = append([]types.ProfileDescriptor(nil), ds...) })
}

// SetHotkeys publishes the registered bindings.
func (p *Publisher) SetHotkeys(bs []hotkey.Binding) {
	p.update(func(s *Snapshot) { s.Hotkeys = append([]hotkey.Binding(nil), bs...) })
}

func (p *Publisher) update(mutate func(*Snapshot)) {
	p.mu.Lock()
	defer p.mu.Unlock()

	mutate(&p.current)
	p.current.Version++
	snap := p.current.clone()

	for _, ch := range p.subs {
		select {
		case ch <- snap:
		default:
			// replace the unread snapshot with the newer one
			select {
			case <-ch:
			default:
			}
			ch <- snap
		}
	}
}

func (s Snapshot) clone() Snapshot {
	c := s
	c.Profiles = append([]types.ProfileDescriptor(nil), s.Profiles...)
	c.Hotkeys = append([]hotkey.Binding(nil), s.Hotkeys...)
	return c
}
