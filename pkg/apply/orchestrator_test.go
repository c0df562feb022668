// Test Type: Unit Test
// Description: Tests for the apply pipeline, single-flight and suppression

package apply_test

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/arthur-debert/dotprofile/pkg/apply"
	"github.com/arthur-debert/dotprofile/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApply_FullPipeline(t *testing.T) {
	f := newFixture(t)
	p := f.env.Profile("work").
		Manifest(`{
			"name": "Work",
			"terminal": {"kind": "kitty", "theme": "tokyo"},
			"startupScript": "start.sh"
		}`).
		Home(".zshrc", "zsh").
		Template(".gitconfig", "profile={{PROFILE}} editor={{editor}}").
		Variables(`{"editor": "vim"}`).
		File("wallpaper.png", "img").
		File("start.sh", "true")

	rep, err := f.orch.Apply(context.Background(), "work", apply.Options{})
	require.NoError(t, err)

	assert.Equal(t, apply.OutcomeCompleted, rep.Outcome)
	assert.Equal(t, apply.StateCompleted, rep.FinalState)
	assert.Empty(t, rep.Errors)
	assert.NotEmpty(t, rep.RunID)
	assert.Equal(t, apply.TriggerManual, rep.Trigger)

	var states []apply.State
	for _, s := range rep.Steps {
		states = append(states, s.State)
		assert.False(t, s.Skipped, s.State)
	}
	assert.Equal(t, []apply.State{
		apply.StateRendering,
		apply.StateOverlaying,
		apply.StateSettingWallpaper,
		apply.StateApplyingTerminalTheme,
		apply.StateRunningStartupScript,
	}, states)

	assert.Equal(t, "zsh", f.env.ReadFile(f.env.Home(".zshrc")))
	assert.Equal(t, "profile=Work editor=vim", f.env.ReadFile(f.env.Home(".gitconfig")))
	assert.Equal(t, []string{p.Dir + "/wallpaper.png"}, f.wallpaper.Calls())
	assert.Equal(t, []string{"kitty:tokyo"}, f.terminal.calls)
	assert.Equal(t, []string{p.Dir + "/start.sh"}, f.startup.calls)
	assert.Equal(t, 0, rep.ExitCode)

	snap := f.orch.Publisher().Snapshot()
	assert.Equal(t, "work", snap.ActiveProfile)
	assert.Equal(t, apply.StateCompleted, snap.State)
	assert.False(t, snap.InFlight)
	assert.Equal(t, f.clock.Now(), snap.LastApplied)
	assert.Equal(t, 0, f.orch.Activity().Snapshot().InFlight)
}

func TestApply_SkipsAbsentSteps(t *testing.T) {
	f := newFixture(t)
	f.env.Profile("bare").Home(".zshrc", "zsh")

	rep, err := f.orch.Apply(context.Background(), "bare", apply.Options{})
	require.NoError(t, err)
	assert.Equal(t, apply.OutcomeCompleted, rep.Outcome)

	for _, s := range []apply.State{apply.StateRendering, apply.StateSettingWallpaper, apply.StateApplyingTerminalTheme, apply.StateRunningStartupScript} {
		step, ok := rep.Step(s)
		require.True(t, ok, s)
		assert.True(t, step.Skipped, s)
	}
	step, _ := rep.Step(apply.StateOverlaying)
	assert.False(t, step.Skipped)
	assert.Empty(t, f.wallpaper.Calls())
	assert.Equal(t, -1, rep.ExitCode)
}

func TestApply_StepFailuresAreNotFatal(t *testing.T) {
	f := newFixture(t)
	f.wallpaper.err = stderrors.New("no display")
	f.terminal.err = stderrors.New("terminal not running")
	f.startup.code, f.startup.err = 2, errors.New(errors.ErrStartupScript, "exit 2")

	f.env.Profile("work").
		Manifest(`{
			"terminal": {"kind": "iterm2", "theme": "x"},
			"startupScript": "start.sh",
			"replacements": [{"source": "tool", "destination": "/usr/local/bin/tool"}]
		}`).
		Home(".zshrc", "zsh").
		File("tool", "bin").
		File("bg.jpg", "img").
		File("start.sh", "exit 2")

	rep, err := f.orch.Apply(context.Background(), "work", apply.Options{})
	require.NoError(t, err)
	assert.Equal(t, apply.OutcomeCompleted, rep.Outcome)

	var codes []errors.ErrorCode
	for _, e := range rep.Errors {
		codes = append(codes, errors.GetErrorCode(e))
	}
	assert.Equal(t, []errors.ErrorCode{
		errors.ErrPathUnsafe,
		errors.ErrWallpaperSet,
		errors.ErrTerminalTheme,
		errors.ErrStartupScript,
	}, codes)
	assert.Equal(t, 2, rep.ExitCode)
	assert.Equal(t, "zsh", f.env.ReadFile(f.env.Home(".zshrc")))
	assert.Equal(t, "work", f.orch.Publisher().Snapshot().ActiveProfile)
}

func TestApply_BadVariablesAreReported(t *testing.T) {
	f := newFixture(t)
	f.env.Profile("work").
		Template(".gitconfig", "profile={{PROFILE}}").
		Variables(`{"broken": `)

	rep, err := f.orch.Apply(context.Background(), "work", apply.Options{})
	require.NoError(t, err)
	assert.Equal(t, apply.OutcomeCompleted, rep.Outcome)
	require.Len(t, rep.Errors, 1)
	assert.True(t, errors.IsErrorCode(rep.Errors[0], errors.ErrTemplateRender))
	assert.Equal(t, "profile=work", f.env.ReadFile(f.env.Home(".gitconfig")))
}

func TestApply_ProfileInvalid(t *testing.T) {
	f := newFixture(t)
	f.env.Profile("broken").Manifest(`{"terminal": {"kind": "hyper"}}`).Home(".zshrc", "zsh")

	for _, id := range []string{"ghost", "broken"} {
		rep, err := f.orch.Apply(context.Background(), id, apply.Options{})
		require.Error(t, err, id)
		assert.True(t, errors.IsErrorCode(err, errors.ErrProfileInvalid))
		assert.Equal(t, apply.OutcomeFailed, rep.Outcome)
		assert.Equal(t, apply.StateFailed, rep.FinalState)
		assert.Equal(t, err, rep.Err())
		assert.Empty(t, rep.Steps)
	}
	assert.False(t, fileExists(f, f.env.Home(".zshrc")))
}

func fileExists(f *fixture, path string) bool {
	_, err := f.env.FS.Stat(path)
	return err == nil
}

func TestApply_CallerCancellation(t *testing.T) {
	f := newFixture(t)
	f.env.Profile("p").Home("a", "a")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	rep, err := f.orch.Apply(ctx, "p", apply.Options{})
	require.NoError(t, err)
	assert.Equal(t, apply.OutcomeCancelled, rep.Outcome)
	assert.False(t, fileExists(f, f.env.Home("a")))
}

func TestApply_RecencySuppression(t *testing.T) {
	f := newFixture(t)
	f.env.Profile("p").Home("a", "a")
	f.env.Profile("q").Home("b", "b")
	ctx := context.Background()

	apply1, err := f.orch.Apply(ctx, "p", apply.Options{})
	require.NoError(t, err)
	assert.Equal(t, apply.OutcomeCompleted, apply1.Outcome)

	f.clock.Advance(time.Second)
	rep, err := f.orch.Apply(ctx, "p", apply.Options{Trigger: apply.TriggerWatch})
	require.NoError(t, err)
	assert.Equal(t, apply.OutcomeSuppressed, rep.Outcome)
	assert.Equal(t, apply.StateIdle, rep.FinalState)
	assert.Empty(t, rep.Steps)

	rep, err = f.orch.Apply(ctx, "p", apply.Options{Force: true})
	require.NoError(t, err)
	assert.Equal(t, apply.OutcomeCompleted, rep.Outcome)

	f.clock.Advance(2 * time.Second)
	rep, err = f.orch.Apply(ctx, "p", apply.Options{})
	require.NoError(t, err)
	assert.Equal(t, apply.OutcomeCompleted, rep.Outcome)

	rep, err = f.orch.Apply(ctx, "q", apply.Options{})
	require.NoError(t, err)
	assert.Equal(t, apply.OutcomeCompleted, rep.Outcome, "a different profile is never suppressed")

	rep, err = f.orch.Apply(ctx, "p", apply.Options{})
	require.NoError(t, err)
	assert.Equal(t, apply.OutcomeCompleted, rep.Outcome, "p is no longer the last applied profile")
}

func TestApply_RepeatedApplyIsIdempotent(t *testing.T) {
	f := newFixture(t)
	f.env.WriteFile(f.env.Home(".zshrc"), "user")
	f.env.Profile("p").Home(".zshrc", "profile")

	first, err := f.orch.Apply(context.Background(), "p", apply.Options{})
	require.NoError(t, err)
	require.Len(t, first.Overlay.Backups(), 1)

	second, err := f.orch.Apply(context.Background(), "p", apply.Options{Force: true})
	require.NoError(t, err)
	assert.Empty(t, second.Overlay.Backups())
	assert.Equal(t, "user", f.env.ReadFile(f.env.Home(".zshrc.bak")))
	assert.Equal(t, "profile", f.env.ReadFile(f.env.Home(".zshrc")))
}

func TestApply_SwitchingProfilesBacksUpPreviousContent(t *testing.T) {
	f := newFixture(t)
	f.env.WriteFile(f.env.Home(".zshrc"), "user")
	f.env.Profile("work").Home(".zshrc", "work")
	f.env.Profile("play").Home(".zshrc", "play")

	_, err := f.orch.Apply(context.Background(), "work", apply.Options{})
	require.NoError(t, err)
	assert.Equal(t, "user", f.env.ReadFile(f.env.Home(".zshrc.bak")))

	rep, err := f.orch.Apply(context.Background(), "play", apply.Options{})
	require.NoError(t, err)
	assert.Equal(t, apply.OutcomeCompleted, rep.Outcome)
	assert.Equal(t, []string{f.env.Home(".zshrc.bak")}, rep.Overlay.Backups())
	assert.Equal(t, "work", f.env.ReadFile(f.env.Home(".zshrc.bak")))
	assert.Equal(t, "play", f.env.ReadFile(f.env.Home(".zshrc")))
}

func TestExclusive(t *testing.T) {
	f := newFixture(t)

	entered := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error)
	go func() {
		done <- f.orch.Exclusive(context.Background(), func(context.Context) error {
			close(entered)
			<-release
			return nil
		})
	}()
	waitFor(t, entered, "first exclusive section")

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := f.orch.Exclusive(ctx, func(context.Context) error {
		t.Error("must not run while the lock is held")
		return nil
	})
	assert.True(t, errors.IsErrorCode(err, errors.ErrCancelled))

	close(release)
	assert.NoError(t, <-done)

	ran := false
	require.NoError(t, f.orch.Exclusive(context.Background(), func(context.Context) error {
		ran = true
		return nil
	}))
	assert.True(t, ran)
}

func TestPlanAndRender(t *testing.T) {
	f := newFixture(t)
	f.env.WriteFile(f.env.Home(".zshrc"), "user")
	p := f.env.Profile("p").
		Home(".zshrc", "profile").
		Template(".gitconfig", "{{PROFILE}}")

	d, res, err := f.orch.Plan("p")
	require.NoError(t, err)
	assert.Equal(t, "p", d.ID)
	require.Len(t, res.Files, 1)
	assert.Equal(t, "user", f.env.ReadFile(f.env.Home(".zshrc")))

	rendered, err := f.orch.Render(context.Background(), "p")
	require.NoError(t, err)
	assert.Equal(t, 1, rendered.Rendered())
	assert.Equal(t, "p", f.env.ReadFile(p.Dir+"/home/.gitconfig"))

	_, _, err = f.orch.Plan("ghost")
	assert.True(t, errors.IsErrorCode(err, errors.ErrProfileInvalid))
}
