package apply_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/arthur-debert/dotprofile/pkg/apply"
	"github.com/arthur-debert/dotprofile/pkg/overlay"
	"github.com/arthur-debert/dotprofile/pkg/profiles"
	"github.com/arthur-debert/dotprofile/pkg/testutil"
	"github.com/arthur-debert/dotprofile/pkg/types"
	"github.com/jonboulle/clockwork"
)

// stubWallpaper records calls.
type stubWallpaper struct {
	mu    sync.Mutex
	calls []string
	err   error
}

func (w *stubWallpaper) SetWallpaper(_ context.Context, path string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.calls = append(w.calls, path)
	return w.err
}

func (w *stubWallpaper) Calls() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]string(nil), w.calls...)
}

type stubTerminal struct {
	calls []string
	err   error
}

func (s *stubTerminal) ApplyTerminalTheme(_ context.Context, kind types.TerminalKind, theme string) error {
	s.calls = append(s.calls, string(kind)+":"+theme)
	return s.err
}

type stubStartup struct {
	calls []string
	code  int
	err   error
}

func (s *stubStartup) RunStartupScript(_ context.Context, path, workDir string) (int, error) {
	s.calls = append(s.calls, path)
	return s.code, s.err
}

type fixture struct {
	env       *testutil.TestEnvironment
	clock     *clockwork.FakeClock
	wallpaper *stubWallpaper
	terminal  *stubTerminal
	startup   *stubStartup
	orch      *apply.Orchestrator
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	f := &fixture{
		env:       env,
		clock:     clockwork.NewFakeClock(),
		wallpaper: &stubWallpaper{},
		terminal:  &stubTerminal{},
		startup:   &stubStartup{},
	}
	f.orch = apply.New(apply.Deps{
		FS:            env.FS,
		Profiles:      profiles.NewSource(env.FS, env.ProfilesRoot),
		Overlay:       overlay.NewEngine(env.FS, env.Guard(), overlay.NewMemoryLedger(), env.HomeDir),
		Wallpaper:     f.wallpaper,
		Terminal:      f.terminal,
		Startup:       f.startup,
		Clock:         f.clock,
		RecencyWindow: apply.DefaultRecencyWindow,
	})
	return f
}

func waitFor(t *testing.T, ch <-chan struct{}, what string) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for %s", what)
	}
}
