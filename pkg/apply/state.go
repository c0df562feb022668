package apply

// State is a pipeline state.
type State string

const (
	StateIdle                  State = "idle"
	StateRendering             State = "rendering"
	StateOverlaying            State = "overlaying"
	StateSettingWallpaper      State = "setting_wallpaper"
	StateApplyingTerminalTheme State = "applying_terminal_theme"
	StateRunningStartupScript  State = "running_startup_script"
	StateCompleted             State = "completed"
	StateFailed                State = "failed"
	StateCancelled             State = "cancelled"
)

// Terminal reports whether no transition leaves s.
func (s State) Terminal() bool {
	return s == StateCompleted || s == StateFailed || s == StateCancelled
}

// Outcome summarizes how an Apply call ended from the caller's view.
type Outcome string

const (
	OutcomeCompleted Outcome = "completed"
	OutcomeFailed    Outcome = "failed"
	OutcomeCancelled Outcome = "cancelled"
	// OutcomeSuppressed means the profile completed within the recency
	// window and nothing ran
	OutcomeSuppressed Outcome = "suppressed"
	// OutcomeCoalesced means the request joined a run of the same profile
	// that was already in flight; the report is that run's
	OutcomeCoalesced Outcome = "coalesced"
)

// Trigger names what asked for an apply. It is carried into logs and
// reports only.
type Trigger string

const (
	TriggerManual   Trigger = "manual"
	TriggerHotkey   Trigger = "hotkey"
	TriggerWatch    Trigger = "watch"
	TriggerPeriodic Trigger = "periodic"
)
