package apply

import (
	"time"

	"github.com/arthur-debert/dotprofile/pkg/overlay"
	"github.com/arthur-debert/dotprofile/pkg/template"
)

// StepResult records one pipeline step.
type StepResult struct {
	State    State
	Skipped  bool
	Err      error
	Duration time.Duration
}

// Report is the complete account of one Apply call.
type Report struct {
	RunID     string
	ProfileID string
	Trigger   Trigger
	Outcome   Outcome
	// FinalState is the terminal state, or Idle for suppressed requests
	FinalState State
	// Interrupted is the state a cancelled run was in when it stopped
	Interrupted State
	// Cause is set when the run failed
	Cause    error
	Started  time.Time
	Finished time.Time

	Steps     []StepResult
	Templates *template.Result
	Overlay   *overlay.Result
	// ExitCode of the startup script, -1 when it did not run to exit
	ExitCode int
	// Errors are the non-fatal step failures in pipeline order
	Errors []error
}

// Err returns the fatal cause, if any.
func (r *Report) Err() error {
	if r == nil {
		return nil
	}
	return r.Cause
}

// Duration is the wall time of the run.
func (r *Report) Duration() time.Duration {
	if r.Finished.IsZero() {
		return 0
	}
	return r.Finished.Sub(r.Started)
}

// Step returns the result for state s, if that step ran.
func (r *Report) Step(s State) (StepResult, bool) {
	for _, step := range r.Steps {
		if step.State == s {
			return step, true
		}
	}
	return StepResult{}, false
}

func (r *Report) addErrors(errs ...error) {
	for _, err := range errs {
		if err != nil {
			r.Errors = append(r.Errors, err)
		}
	}
}

// coalesced returns a copy of r as seen by a request that joined it.
func (r *Report) coalesced() *Report {
	c := *r
	c.Outcome = OutcomeCoalesced
	c.Steps = append([]StepResult(nil), r.Steps...)
	c.Errors = append([]error(nil), r.Errors...)
	return &c
}
