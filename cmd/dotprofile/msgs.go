package dotprofile

import (
	_ "embed"
	"strings"
)

// Command descriptions
const (
	MsgRootShort = "Switch between named configuration profiles"
	MsgRootLong  = `dotprofile overlays a profile's files onto your home directory, backing up
anything it would overwrite, then applies the profile's wallpaper, terminal
theme and startup script.

Profiles live under the profiles root (default ~/.config/dotprofile/profiles),
one directory each, with an optional profile.json, profile.yaml or
profile.toml manifest.`

	MsgListShort      = "List available profiles"
	MsgShowShort      = "Show a profile and the files it would overlay"
	MsgApplyShort     = "Apply a profile"
	MsgApplyLong      = "Render templates, overlay files, then set wallpaper, terminal theme and run the startup script. Step failures are reported but do not stop the run."
	MsgRenderShort    = "Render a profile's templates without applying it"
	MsgWatchShort     = "Re-apply a profile whenever its files change"
	MsgHotkeysShort   = "List profile hotkeys and conflicts"
	MsgNormalizeShort = "Print the canonical form of a shortcut"
	MsgCaptureShort   = "Create a profile from files currently in your home directory"
	MsgCaptureLong    = "Copy the given files or directories into <root>/<name>/home so applying the profile later restores them. Paths must be inside your home directory."
	MsgGenConfigShort = "Print the default configuration"
	MsgVersionShort   = "Print version information"
	MsgCompletion     = "Generate shell completion script"
	MsgManShort       = "Generate man pages"
)

// Flag descriptions
const (
	MsgFlagVerbose   = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig    = "Config file (default <config dir>/config.toml)"
	MsgFlagRoot      = "Profiles root directory"
	MsgFlagFormat    = "Output format: auto, term, text or json"
	MsgFlagForce     = "Apply even if the profile was applied moments ago"
	MsgFlagDryRun    = "Show what would be overlaid without changing anything"
	MsgFlagInterval  = "Also re-apply on this interval (0 disables)"
	MsgFlagCapForce  = "Capture into an existing profile, replacing files"
	MsgFlagEffective = "Print the effective configuration instead of the commented defaults"
	MsgFlagManDir    = "Directory to write man pages to"
)

// Status and error messages
const (
	MsgWatching       = "Watching %s (Ctrl-C to stop)"
	MsgWatchStopped   = "Stopped watching %s"
	MsgErrNoCommand   = "no command specified"
	MsgErrApplyFailed = "apply of %s did not complete"
	MsgManWritten     = "Man pages written to %s"
)

// Long-form messages
var (
	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)

	//go:embed msgs/apply-example.txt
	msgApplyExampleRaw string
	MsgApplyExample    = strings.TrimRight(msgApplyExampleRaw, "\n")

	//go:embed msgs/capture-example.txt
	msgCaptureExampleRaw string
	MsgCaptureExample    = strings.TrimRight(msgCaptureExampleRaw, "\n")
)
