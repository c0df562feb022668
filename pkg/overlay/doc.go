// Package overlay mirrors a profile's home tree and explicit replacements
// onto their real destinations without silently discarding user data.
//
// For every (source, destination) pair the engine checks the destination
// with the path guard, creates missing parent directories, backs up
// content it did not write itself to <destination>.bak, and replaces the
// destination atomically. One failed pair never stops the rest of the
// batch.
//
// Backups follow refresh-on-divergence: a destination already holding
// the intended bytes is skipped, a destination whose current bytes were
// written by a previous overlay needs no backup, and a .bak that already
// holds the current bytes is kept as is. Only genuinely new user content
// produces a new .bak, rotating older ones to .bak.1, .bak.2 and so on.
package overlay
