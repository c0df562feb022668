// Package testutil provides shared fixtures for dotprofile tests.
//
// Key components:
//   - TestEnvironment: a profiles root, a home directory and a filesystem,
//     either in memory (afero) or isolated in a temp directory
//   - ProfileBuilder: declarative profile directory setup
//   - file assertions that work against any types.FS
//
// Most tests should use EnvMemoryOnly. Tests that exercise symlink
// resolution, file modes or external processes need EnvIsolated.
package testutil
