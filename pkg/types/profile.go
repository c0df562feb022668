package types

import (
	"path/filepath"
	"strings"
)

// TerminalKind identifies a supported terminal emulator.
type TerminalKind string

const (
	TerminalAlacritty   TerminalKind = "alacritty"
	TerminalTerminalApp TerminalKind = "terminal.app"
	TerminalITerm2      TerminalKind = "iterm2"
	TerminalKitty       TerminalKind = "kitty"
	TerminalWezTerm     TerminalKind = "wezterm"
)

// TerminalKinds lists every supported terminal in display order.
var TerminalKinds = []TerminalKind{
	TerminalAlacritty, TerminalTerminalApp, TerminalITerm2, TerminalKitty, TerminalWezTerm,
}

// Valid reports whether k is a supported terminal.
func (k TerminalKind) Valid() bool {
	for _, known := range TerminalKinds {
		if k == known {
			return true
		}
	}
	return false
}

// IDEKind identifies a supported editor.
type IDEKind string

const (
	IDEVSCode IDEKind = "vscode"
	IDECursor IDEKind = "cursor"
)

// Valid reports whether k is a supported editor.
func (k IDEKind) Valid() bool {
	return k == IDEVSCode || k == IDECursor
}

// Appearance is the system light/dark preference.
type Appearance string

const (
	AppearanceLight Appearance = "light"
	AppearanceDark  Appearance = "dark"
	AppearanceAuto  Appearance = "auto"
)

// Valid reports whether a is a known appearance. The zero value is valid
// and means "leave the system setting alone".
func (a Appearance) Valid() bool {
	switch a {
	case "", AppearanceLight, AppearanceDark, AppearanceAuto:
		return true
	}
	return false
}

// TerminalConfig binds a profile to a terminal and an optional theme.
type TerminalConfig struct {
	Kind  TerminalKind `json:"kind" yaml:"kind" toml:"kind"`
	Theme string       `json:"theme,omitempty" yaml:"theme,omitempty" toml:"theme,omitempty"`
}

// IDEConfig binds a profile to an editor, theme and extension set.
type IDEConfig struct {
	Kind       IDEKind  `json:"kind" yaml:"kind" toml:"kind"`
	Theme      string   `json:"theme,omitempty" yaml:"theme,omitempty" toml:"theme,omitempty"`
	Extensions []string `json:"extensions,omitempty" yaml:"extensions,omitempty" toml:"extensions,omitempty"`
}

// Replacement is an explicit source -> destination overlay pair. Source is
// relative to the profile directory; destination is absolute or ~-prefixed.
type Replacement struct {
	Source      string `json:"source" yaml:"source" toml:"source"`
	Destination string `json:"destination" yaml:"destination" toml:"destination"`
}

// Profile is a named bundle of configuration applied as a unit.
type Profile struct {
	Name          string          `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty"`
	Order         int             `json:"order" yaml:"order" toml:"order"`
	Hotkey        string          `json:"hotkey,omitempty" yaml:"hotkey,omitempty" toml:"hotkey,omitempty"`
	Wallpaper     string          `json:"wallpaper,omitempty" yaml:"wallpaper,omitempty" toml:"wallpaper,omitempty"`
	Terminal      *TerminalConfig `json:"terminal,omitempty" yaml:"terminal,omitempty" toml:"terminal,omitempty"`
	IDE           *IDEConfig      `json:"ide,omitempty" yaml:"ide,omitempty" toml:"ide,omitempty"`
	SystemTheme   Appearance      `json:"systemTheme,omitempty" yaml:"systemTheme,omitempty" toml:"systemTheme,omitempty"`
	Replacements  []Replacement   `json:"replacements,omitempty" yaml:"replacements,omitempty" toml:"replacements,omitempty"`
	StartupScript string          `json:"startupScript,omitempty" yaml:"startupScript,omitempty" toml:"startupScript,omitempty"`
}

// ProfileDescriptor pairs a Profile with the directory that owns it. It is
// recomputed on every scan and never persisted.
type ProfileDescriptor struct {
	// ID is the final path component of Dir
	ID string
	// Dir is the absolute profile directory
	Dir string
	// DisplayName is the profile name, or ID when the name is empty
	DisplayName string
	Profile     Profile
}

// NewDescriptor builds the descriptor projection for a loaded profile.
func NewDescriptor(dir string, p Profile) ProfileDescriptor {
	id := filepath.Base(filepath.Clean(dir))
	display := strings.TrimSpace(p.Name)
	if display == "" {
		display = id
	}
	return ProfileDescriptor{
		ID:          id,
		Dir:         dir,
		DisplayName: display,
		Profile:     p,
	}
}

// Path returns the absolute path of a profile-relative file.
func (d ProfileDescriptor) Path(rel string) string {
	return filepath.Join(d.Dir, rel)
}

// WallpaperPath returns the absolute wallpaper path, or "" if none is set.
func (d ProfileDescriptor) WallpaperPath() string {
	if d.Profile.Wallpaper == "" {
		return ""
	}
	return d.Path(d.Profile.Wallpaper)
}

// StartupScriptPath returns the absolute startup script path, or "".
func (d ProfileDescriptor) StartupScriptPath() string {
	if d.Profile.StartupScript == "" {
		return ""
	}
	return d.Path(d.Profile.StartupScript)
}
