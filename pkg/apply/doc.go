// Package apply runs the profile apply pipeline:
//
//	Idle -> Rendering -> Overlaying -> SettingWallpaper ->
//	ApplyingTerminalTheme -> RunningStartupScript -> Completed
//
// with Failed reachable only when the profile cannot be loaded, and
// Cancelled reachable from any non-terminal state when a newer request
// preempts the run.
//
// At most one run mutates the filesystem at a time. A request for the
// profile already in flight joins that run instead of starting another.
// A request for the profile that completed within the recency window is
// suppressed unless forced. Any other request cancels the in-flight run
// and waits for it to reach its next checkpoint. Checkpoints sit between
// pipeline steps and between overlay files; a write in progress is never
// interrupted and nothing already written is rolled back.
//
// Step failures other than loading the profile are recorded in the
// Report and do not stop the pipeline.
package apply
