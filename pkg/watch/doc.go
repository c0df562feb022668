// Package watch turns filesystem changes and timer ticks into apply
// triggers.
//
// A Watcher follows a profile directory with fsnotify and feeds every
// relevant event into a Debouncer, so an editor saving several files
// produces one trigger after the tree goes quiet. Periodic fires on a
// fixed interval for profiles that should be re-asserted over time.
// Both take a clockwork.Clock so tests can drive time explicitly.
package watch
