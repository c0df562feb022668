// Package paths provides centralized path handling for dotprofile.
//
// It resolves the XDG directories the tool uses, validates profile names
// the same way directory names are validated, and hosts the Path Safety
// Guard that every overlay write is checked against.
//
// # Environment Variables
//
//   - DOTPROFILE_ROOT: profiles root (default: $XDG_CONFIG_HOME/dotprofile/profiles)
//   - DOTPROFILE_DATA_DIR: override XDG data directory
//   - DOTPROFILE_CONFIG_DIR: override XDG config directory
//   - XDG_STATE_HOME: state directory base (log file)
//
// # Usage
//
//	p, err := paths.New("")
//	if err != nil {
//	    return err
//	}
//	dir := p.ProfileDir("work") // ~/.config/dotprofile/profiles/work
//
//	guard := paths.NewGuard(p.HomeDir())
//	if !guard.IsSafeWritePath("/etc/hosts") {
//	    // rejected
//	}
package paths
