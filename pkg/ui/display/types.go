// Package display holds the view models every output format renders.
// Converters flatten domain results into these plain structs so the text,
// terminal and JSON renderers agree on what is shown.
package display

import "time"

// ProfileRow is one profile in a listing.
type ProfileRow struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Order     int    `json:"order"`
	Hotkey    string `json:"hotkey,omitempty"`
	Terminal  string `json:"terminal,omitempty"`
	Wallpaper string `json:"wallpaper,omitempty"`
	Active    bool   `json:"active"`
}

// InvalidRow is a directory that could not be loaded as a profile.
type InvalidRow struct {
	Dir   string `json:"dir"`
	Error string `json:"error"`
}

// ProfileList is the result of `list`.
type ProfileList struct {
	Root     string       `json:"root"`
	Profiles []ProfileRow `json:"profiles"`
	Invalid  []InvalidRow `json:"invalid,omitempty"`
}

// ProfileDetail is the result of `show`.
type ProfileDetail struct {
	ProfileRow
	Dir           string            `json:"dir"`
	IDE           string            `json:"ide,omitempty"`
	Extensions    []string          `json:"extensions,omitempty"`
	SystemTheme   string            `json:"systemTheme,omitempty"`
	StartupScript string            `json:"startupScript,omitempty"`
	Replacements  map[string]string `json:"replacements,omitempty"`
	Files         []FileRow         `json:"files"`
	// Readme is the profile's README.md, rendered as markdown on terminals
	Readme string `json:"readme,omitempty"`
}

// FileRow is one overlay pair and what happened, or would happen, to it.
type FileRow struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
	Origin      string `json:"origin"`
	Status      string `json:"status,omitempty"`
	Backup      string `json:"backup,omitempty"`
	Error       string `json:"error,omitempty"`
}

// StepRow is one pipeline step.
type StepRow struct {
	State    string `json:"state"`
	Skipped  bool   `json:"skipped"`
	Error    string `json:"error,omitempty"`
	Duration string `json:"duration"`
}

// TemplateRow is one rendered template.
type TemplateRow struct {
	Source     string   `json:"source"`
	Output     string   `json:"output"`
	Unresolved []string `json:"unresolved,omitempty"`
	Error      string   `json:"error,omitempty"`
}

// ApplyResult is the result of `apply`, and of each watch-triggered run.
type ApplyResult struct {
	RunID       string        `json:"runId"`
	Profile     string        `json:"profile"`
	Trigger     string        `json:"trigger"`
	Outcome     string        `json:"outcome"`
	FinalState  string        `json:"finalState"`
	Interrupted string        `json:"interrupted,omitempty"`
	Started     time.Time     `json:"started"`
	Duration    string        `json:"duration"`
	Steps       []StepRow     `json:"steps"`
	Templates   []TemplateRow `json:"templates,omitempty"`
	Files       []FileRow     `json:"files,omitempty"`
	ExitCode    *int          `json:"exitCode,omitempty"`
	Errors      []string      `json:"errors,omitempty"`
	Cause       string        `json:"cause,omitempty"`
}

// PlanResult is the result of `apply --dry-run`.
type PlanResult struct {
	Profile string    `json:"profile"`
	DryRun  bool      `json:"dryRun"`
	Files   []FileRow `json:"files"`
}

// RenderResult is the result of `render`.
type RenderResult struct {
	Profile   string        `json:"profile"`
	Skipped   bool          `json:"skipped"`
	Templates []TemplateRow `json:"templates"`
}

// HotkeyRow is one registered shortcut.
type HotkeyRow struct {
	Shortcut string `json:"shortcut"`
	Profile  string `json:"profile"`
}

// ConflictRow is a shortcut claimed by several profiles.
type ConflictRow struct {
	Shortcut string   `json:"shortcut"`
	Profiles []string `json:"profiles"`
}

// HotkeyTable is the result of `hotkeys`.
type HotkeyTable struct {
	Bindings  []HotkeyRow   `json:"bindings"`
	Conflicts []ConflictRow `json:"conflicts,omitempty"`
	Errors    []string      `json:"errors,omitempty"`
}

// Shortcut is the result of `normalize`.
type Shortcut struct {
	Input     string `json:"input"`
	Canonical string `json:"canonical"`
}

// CaptureResult is the result of `capture`.
type CaptureResult struct {
	Profile string    `json:"profile"`
	Dir     string    `json:"dir"`
	Files   []FileRow `json:"files"`
}
