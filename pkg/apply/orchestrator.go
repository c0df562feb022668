package apply

import (
	"context"
	"sync"
	"time"

	"github.com/arthur-debert/dotprofile/pkg/errors"
	"github.com/arthur-debert/dotprofile/pkg/logging"
	"github.com/arthur-debert/dotprofile/pkg/overlay"
	"github.com/arthur-debert/dotprofile/pkg/template"
	"github.com/arthur-debert/dotprofile/pkg/types"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
)

// DefaultRecencyWindow suppresses re-applying the profile that just
// completed.
const DefaultRecencyWindow = 1500 * time.Millisecond

// Deps wires an Orchestrator. Profiles, FS and Overlay are required; a
// nil collaborator skips its step.
type Deps struct {
	FS        types.FS
	Profiles  ProfileSource
	Overlay   *overlay.Engine
	Wallpaper WallpaperSetter
	Terminal  TerminalThemeApplier
	Startup   StartupRunner
	Publisher *Publisher
	Activity  *Activity
	Clock     clockwork.Clock
	// RecencyWindow of zero disables suppression
	RecencyWindow time.Duration
	// StepTimeout bounds each wallpaper, terminal and startup call; zero
	// leaves them bounded only by the caller's context
	StepTimeout time.Duration
}

// Options tune a single Apply call.
type Options struct {
	// Force bypasses recency suppression
	Force   bool
	Trigger Trigger
}

// run is one pipeline execution and the requests waiting on it.
type run struct {
	id      string
	profile string
	// parent is the caller's context; preemption does not cancel it
	parent  context.Context
	cancel  context.CancelFunc
	done    chan struct{}
	report  *Report
	joiners int
}

// Orchestrator sequences the apply pipeline with single-flight semantics.
type Orchestrator struct {
	deps Deps

	mu      sync.Mutex
	current *run

	// sem is the mutation lock; a channel so waiting can be cancelled
	sem chan struct{}
}

// New returns an Orchestrator.
func New(deps Deps) *Orchestrator {
	if deps.Clock == nil {
		deps.Clock = clockwork.NewRealClock()
	}
	if deps.Activity == nil {
		deps.Activity = NewActivity(deps.Clock)
	}
	if deps.Publisher == nil {
		deps.Publisher = NewPublisher()
	}
	return &Orchestrator{deps: deps, sem: make(chan struct{}, 1)}
}

// Publisher returns the state publisher.
func (o *Orchestrator) Publisher() *Publisher { return o.deps.Publisher }

// Activity returns the activity counter.
func (o *Orchestrator) Activity() *Activity { return o.deps.Activity }

// Apply loads profileID and runs the pipeline for it. The returned error
// is non-nil only when the run failed; cancellation, suppression and step
// failures are described by the Report.
func (o *Orchestrator) Apply(ctx context.Context, profileID string, opts Options) (*Report, error) {
	if opts.Trigger == "" {
		opts.Trigger = TriggerManual
	}
	logger := logging.GetLogger("apply").With().
		Str("profile", profileID).
		Str("trigger", string(opts.Trigger)).
		Logger()

	d, err := o.deps.Profiles.Load(profileID)
	if err != nil {
		rep := o.newReport(profileID, opts)
		rep.Cause = errors.Wrap(err, errors.ErrProfileInvalid, "profile cannot be applied").
			WithDetail("profile", profileID)
		rep.Outcome, rep.FinalState = OutcomeFailed, StateFailed
		rep.Finished = o.deps.Clock.Now()
		logger.Error().Err(err).Msg("apply failed before any step")
		return rep, rep.Cause
	}

	o.mu.Lock()
	if cur := o.current; cur != nil && cur.profile == d.ID {
		cur.joiners++
		o.mu.Unlock()
		logger.Debug().Str("run", cur.id).Msg("joining in-flight apply")
		select {
		case <-cur.done:
			return cur.report.coalesced(), cur.report.Cause
		case <-ctx.Done():
			rep := o.newReport(d.ID, opts)
			rep.Outcome, rep.FinalState, rep.Interrupted = OutcomeCancelled, StateCancelled, StateIdle
			rep.Finished = o.deps.Clock.Now()
			return rep, nil
		}
	}
	if o.current == nil && !opts.Force && o.deps.Activity.Recent(d.ID, o.deps.RecencyWindow) {
		o.mu.Unlock()
		rep := o.newReport(d.ID, opts)
		rep.Outcome, rep.FinalState = OutcomeSuppressed, StateIdle
		rep.Finished = rep.Started
		logger.Debug().Msg("suppressed, profile applied moments ago")
		return rep, nil
	}

	runCtx, cancel := context.WithCancel(ctx)
	r := &run{
		id:      uuid.NewString(),
		profile: d.ID,
		parent:  ctx,
		cancel:  cancel,
		done:    make(chan struct{}),
	}
	if prev := o.current; prev != nil {
		logger.Info().Str("preempted", prev.profile).Str("preempted_run", prev.id).Msg("cancelling in-flight apply")
		prev.cancel()
	}
	o.current = r
	o.mu.Unlock()

	rep := o.execute(runCtx, r, d, opts, logger.With().Str("run", r.id).Logger())

	o.mu.Lock()
	r.report = rep
	if o.current == r {
		o.current = nil
	}
	o.mu.Unlock()
	close(r.done)
	cancel()

	return rep, rep.Cause
}

// execute waits for the mutation lock and runs the pipeline.
func (o *Orchestrator) execute(ctx context.Context, r *run, d types.ProfileDescriptor, opts Options, logger zerolog.Logger) *Report {
	rep := o.newReport(d.ID, opts)
	rep.RunID = r.id

	select {
	case o.sem <- struct{}{}:
	case <-ctx.Done():
		logger.Info().Msg("superseded before starting")
		return o.finishCancelled(rep, StateIdle)
	}
	defer func() { <-o.sem }()

	if ctx.Err() != nil {
		logger.Info().Msg("superseded before starting")
		return o.finishCancelled(rep, StateIdle)
	}

	o.deps.Activity.Acquire()
	defer func() {
		o.deps.Activity.Release()
		o.publishIdle()
	}()

	done := logging.LogOperationStart(logger, "apply")
	defer done()

	// external steps run to completion once started; a preempted run
	// stops at the next checkpoint instead
	steps := []struct {
		state    State
		fn       func(context.Context, types.ProfileDescriptor, *Report) (bool, error)
		external bool
	}{
		{StateRendering, o.stepRender, false},
		{StateOverlaying, o.stepOverlay, false},
		{StateSettingWallpaper, o.stepWallpaper, true},
		{StateApplyingTerminalTheme, o.stepTerminal, true},
		{StateRunningStartupScript, o.stepStartup, true},
	}

	for _, step := range steps {
		if ctx.Err() != nil {
			return o.finishCancelled(rep, step.state)
		}
		o.publishState(r.id, d.ID, step.state)

		stepCtx, stepCancel := ctx, context.CancelFunc(func() {})
		if step.external {
			stepCtx, stepCancel = o.externalContext(r.parent)
		}
		start := o.deps.Clock.Now()
		skipped, err := step.fn(stepCtx, d, rep)
		stepCancel()
		rep.Steps = append(rep.Steps, StepResult{
			State:    step.state,
			Skipped:  skipped,
			Err:      err,
			Duration: o.deps.Clock.Since(start),
		})

		if errors.IsErrorCode(err, errors.ErrCancelled) || (err != nil && ctx.Err() != nil) {
			return o.finishCancelled(rep, step.state)
		}
		if err != nil {
			logger.Warn().Err(err).Str("step", string(step.state)).Msg("step failed, continuing")
		}
		rep.addErrors(err)
	}

	if ctx.Err() != nil {
		return o.finishCancelled(rep, StateRunningStartupScript)
	}

	finished := o.deps.Activity.Complete(d.ID)
	rep.Outcome, rep.FinalState, rep.Finished = OutcomeCompleted, StateCompleted, finished
	o.deps.Publisher.update(func(s *Snapshot) {
		s.State, s.RunID, s.RunProfile = StateCompleted, r.id, d.ID
		s.ActiveProfile = d.ID
		s.LastApplied = finished
	})
	logger.Info().Int("errors", len(rep.Errors)).Msg("apply completed")
	return rep
}

// externalContext is the context handed to collaborators: the caller's,
// bounded by StepTimeout.
func (o *Orchestrator) externalContext(parent context.Context) (context.Context, context.CancelFunc) {
	if o.deps.StepTimeout > 0 {
		return context.WithTimeout(parent, o.deps.StepTimeout)
	}
	return context.WithCancel(parent)
}

func (o *Orchestrator) stepRender(ctx context.Context, d types.ProfileDescriptor, rep *Report) (bool, error) {
	r := template.NewRenderer(o.deps.FS, template.BuiltinVariables(d))
	res, err := r.RenderTemplates(ctx, d.Dir)
	rep.Templates = res
	if res != nil {
		rep.addErrors(res.Errors()...)
	}
	return res != nil && res.Skipped, err
}

func (o *Orchestrator) stepOverlay(ctx context.Context, d types.ProfileDescriptor, rep *Report) (bool, error) {
	engine := o.deps.Overlay
	engine.Profile = d.ID

	pairs, err := engine.PlanPairs(d.Dir, d.Profile)
	if err != nil {
		return false, err
	}
	if len(pairs) == 0 {
		return true, nil
	}
	res := engine.Apply(ctx, pairs)
	rep.Overlay = res
	rep.addErrors(res.Errors()...)
	if res.Cancelled {
		return false, errors.New(errors.ErrCancelled, "overlay cancelled")
	}
	return false, res.LedgerErr
}

func (o *Orchestrator) stepWallpaper(ctx context.Context, d types.ProfileDescriptor, _ *Report) (bool, error) {
	path := d.WallpaperPath()
	if path == "" || o.deps.Wallpaper == nil {
		return true, nil
	}
	if err := o.deps.Wallpaper.SetWallpaper(ctx, path); err != nil {
		return false, errors.Wrap(err, errors.ErrWallpaperSet, "setting wallpaper").
			WithDetail("path", path)
	}
	return false, nil
}

func (o *Orchestrator) stepTerminal(ctx context.Context, d types.ProfileDescriptor, _ *Report) (bool, error) {
	t := d.Profile.Terminal
	if t == nil || t.Theme == "" || o.deps.Terminal == nil {
		return true, nil
	}
	if err := o.deps.Terminal.ApplyTerminalTheme(ctx, t.Kind, t.Theme); err != nil {
		return false, errors.Wrap(err, errors.ErrTerminalTheme, "applying terminal theme").
			WithDetail("kind", string(t.Kind)).
			WithDetail("theme", t.Theme)
	}
	return false, nil
}

func (o *Orchestrator) stepStartup(ctx context.Context, d types.ProfileDescriptor, rep *Report) (bool, error) {
	path := d.StartupScriptPath()
	if path == "" || o.deps.Startup == nil {
		return true, nil
	}
	code, err := o.deps.Startup.RunStartupScript(ctx, path, d.Dir)
	rep.ExitCode = code
	if err != nil {
		if errors.IsErrorCode(err, errors.ErrCancelled) {
			return false, err
		}
		return false, errors.Wrap(err, errors.ErrStartupScript, "running startup script").
			WithDetail("script", path)
	}
	return false, nil
}

// Exclusive runs fn while holding the mutation lock, so profile-mutating
// operations never overlap an apply. It waits for an in-flight apply to
// finish rather than cancelling it.
func (o *Orchestrator) Exclusive(ctx context.Context, fn func(context.Context) error) error {
	select {
	case o.sem <- struct{}{}:
	case <-ctx.Done():
		return errors.Wrap(ctx.Err(), errors.ErrCancelled, "waiting for in-flight apply")
	}
	defer func() { <-o.sem }()
	return fn(ctx)
}

// Cancel requests cancellation of the in-flight run, if any, and reports
// whether there was one.
func (o *Orchestrator) Cancel() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.current == nil {
		return false
	}
	o.current.cancel()
	return true
}

func (o *Orchestrator) newReport(profileID string, opts Options) *Report {
	return &Report{
		RunID:      uuid.NewString(),
		ProfileID:  profileID,
		Trigger:    opts.Trigger,
		FinalState: StateIdle,
		Started:    o.deps.Clock.Now(),
		ExitCode:   -1,
	}
}

func (o *Orchestrator) finishCancelled(rep *Report, at State) *Report {
	rep.Outcome, rep.FinalState, rep.Interrupted = OutcomeCancelled, StateCancelled, at
	rep.Finished = o.deps.Clock.Now()
	o.publishState(rep.RunID, rep.ProfileID, StateCancelled)
	logger := logging.GetLogger("apply")
	logger.Info().
		Str("profile", rep.ProfileID).
		Str("run", rep.RunID).
		Str("at", string(at)).
		Msg("apply cancelled")
	return rep
}

func (o *Orchestrator) publishState(runID, profileID string, s State) {
	inFlight := o.deps.Activity.Snapshot().InFlight > 0
	o.deps.Publisher.update(func(snap *Snapshot) {
		snap.State, snap.RunID, snap.RunProfile = s, runID, profileID
		snap.InFlight = inFlight
	})
}

func (o *Orchestrator) publishIdle() {
	inFlight := o.deps.Activity.Snapshot().InFlight > 0
	o.deps.Publisher.update(func(snap *Snapshot) { snap.InFlight = inFlight })
}

// Plan previews the overlay for profileID without writing anything.
// Templates are not rendered, so the preview reflects the home tree as it
// currently is on disk.
func (o *Orchestrator) Plan(profileID string) (types.ProfileDescriptor, *overlay.Result, error) {
	d, err := o.deps.Profiles.Load(profileID)
	if err != nil {
		return d, nil, errors.Wrap(err, errors.ErrProfileInvalid, "profile cannot be planned").
			WithDetail("profile", profileID)
	}
	pairs, err := o.deps.Overlay.PlanPairs(d.Dir, d.Profile)
	if err != nil {
		return d, nil, err
	}
	return d, o.deps.Overlay.Preview(d.ID, pairs), nil
}

// Render materializes templates for profileID without overlaying them.
// It holds the mutation lock while writing into the profile directory.
func (o *Orchestrator) Render(ctx context.Context, profileID string) (*template.Result, error) {
	d, err := o.deps.Profiles.Load(profileID)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrProfileInvalid, "profile cannot be rendered").
			WithDetail("profile", profileID)
	}
	var res *template.Result
	err = o.Exclusive(ctx, func(ctx context.Context) error {
		var rerr error
		res, rerr = template.NewRenderer(o.deps.FS, template.BuiltinVariables(d)).RenderTemplates(ctx, d.Dir)
		return rerr
	})
	return res, err
}
