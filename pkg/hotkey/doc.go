// Package hotkey turns human-typed shortcut strings such as "Cmd+Ctrl+1"
// into a canonical form and tracks which profile owns each shortcut.
//
// The canonical form lists modifiers in a fixed order (ctrl, opt, shift,
// cmd) followed by exactly one key, joined with "+". Two shortcuts
// collide exactly when their canonical strings are equal.
package hotkey
