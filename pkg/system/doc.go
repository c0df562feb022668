// Package system provides the default implementations of the capabilities
// the apply pipeline calls out to: setting the wallpaper, applying a
// terminal theme and running a profile's startup script.
//
// Wallpaper and terminal theme changes are delegated to user-configured
// commands. An unset command turns the step into a logged no-op.
package system
