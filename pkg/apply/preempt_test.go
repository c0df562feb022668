package apply

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/arthur-debert/dotprofile/pkg/overlay"
	"github.com/arthur-debert/dotprofile/pkg/profiles"
	"github.com/arthur-debert/dotprofile/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// heldWallpaper blocks the call for one profile until release is closed
// and records whether its context was cancelled meanwhile.
type heldWallpaper struct {
	hold    string
	entered chan struct{}
	release chan struct{}

	mu     sync.Mutex
	calls  []string
	ctxErr error
}

func (w *heldWallpaper) SetWallpaper(ctx context.Context, path string) error {
	profile := filepath.Base(filepath.Dir(path))
	w.mu.Lock()
	w.calls = append(w.calls, profile)
	w.mu.Unlock()

	if profile != w.hold {
		return nil
	}
	close(w.entered)
	<-w.release

	w.mu.Lock()
	defer w.mu.Unlock()
	w.ctxErr = ctx.Err()
	return nil
}

func newHeldOrchestrator(t *testing.T, wp WallpaperSetter) (*testutil.TestEnvironment, *Orchestrator) {
	t.Helper()
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	return env, New(Deps{
		FS:        env.FS,
		Profiles:  profiles.NewSource(env.FS, env.ProfilesRoot),
		Overlay:   overlay.NewEngine(env.FS, env.Guard(), overlay.NewMemoryLedger(), env.HomeDir),
		Wallpaper: wp,
	})
}

func TestApply_NewerRequestPreemptsAtNextCheckpoint(t *testing.T) {
	wp := &heldWallpaper{hold: "p", entered: make(chan struct{}), release: make(chan struct{})}
	env, o := newHeldOrchestrator(t, wp)
	env.Profile("p").Home("from-p", "p").File("wallpaper.png", "img")
	env.Profile("q").Home("from-q", "q").File("wallpaper.png", "img")

	first := make(chan *Report)
	go func() {
		rep, _ := o.Apply(context.Background(), "p", Options{})
		first <- rep
	}()
	select {
	case <-wp.entered:
	case <-time.After(5 * time.Second):
		t.Fatal("p never reached the wallpaper step")
	}

	second := make(chan *Report)
	go func() {
		rep, _ := o.Apply(context.Background(), "q", Options{Trigger: TriggerHotkey})
		second <- rep
	}()

	require.Eventually(t, func() bool {
		o.mu.Lock()
		defer o.mu.Unlock()
		return o.current != nil && o.current.profile == "q"
	}, 5*time.Second, time.Millisecond)

	close(wp.release)
	repP, repQ := <-first, <-second

	assert.Equal(t, OutcomeCancelled, repP.Outcome)
	assert.Equal(t, StateCancelled, repP.FinalState)
	assert.Equal(t, StateApplyingTerminalTheme, repP.Interrupted)
	assert.NoError(t, repP.Err())
	require.Len(t, repP.Steps, 3)
	assert.NoError(t, repP.Steps[2].Err, "the wallpaper step ran to completion")

	wp.mu.Lock()
	assert.NoError(t, wp.ctxErr, "preemption must not cancel a running collaborator")
	assert.Equal(t, []string{"p", "q"}, wp.calls)
	wp.mu.Unlock()

	assert.Equal(t, OutcomeCompleted, repQ.Outcome)
	assert.Equal(t, TriggerHotkey, repQ.Trigger)
	assert.Equal(t, "p", env.ReadFile(env.Home("from-p")))
	assert.Equal(t, "q", env.ReadFile(env.Home("from-q")))
	assert.Equal(t, "q", o.Publisher().Snapshot().ActiveProfile)
	assert.Equal(t, 0, o.Activity().Snapshot().InFlight)
}

func TestApply_CallerCancellationReachesCollaborator(t *testing.T) {
	wp := &heldWallpaper{hold: "p", entered: make(chan struct{}), release: make(chan struct{})}
	env, o := newHeldOrchestrator(t, wp)
	env.Profile("p").Home("a", "a").File("wallpaper.png", "img")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan *Report)
	go func() {
		rep, _ := o.Apply(ctx, "p", Options{})
		done <- rep
	}()
	select {
	case <-wp.entered:
	case <-time.After(5 * time.Second):
		t.Fatal("p never reached the wallpaper step")
	}

	cancel()
	close(wp.release)
	rep := <-done

	assert.Equal(t, OutcomeCancelled, rep.Outcome)
	wp.mu.Lock()
	assert.ErrorIs(t, wp.ctxErr, context.Canceled)
	wp.mu.Unlock()
}

func TestApply_StepTimeoutBoundsCollaborators(t *testing.T) {
	var deadline time.Time
	var hasDeadline bool
	wp := wallpaperFunc(func(ctx context.Context, _ string) error {
		deadline, hasDeadline = ctx.Deadline()
		return nil
	})
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.Profile("p").File("wallpaper.png", "img")
	o := New(Deps{
		FS:          env.FS,
		Profiles:    profiles.NewSource(env.FS, env.ProfilesRoot),
		Overlay:     overlay.NewEngine(env.FS, env.Guard(), overlay.NewMemoryLedger(), env.HomeDir),
		Wallpaper:   wp,
		StepTimeout: time.Minute,
	})

	rep, err := o.Apply(context.Background(), "p", Options{})
	require.NoError(t, err)
	assert.Equal(t, OutcomeCompleted, rep.Outcome)
	require.True(t, hasDeadline)
	assert.WithinDuration(t, time.Now().Add(time.Minute), deadline, 10*time.Second)
}

type wallpaperFunc func(context.Context, string) error

func (f wallpaperFunc) SetWallpaper(ctx context.Context, path string) error { return f(ctx, path) }
