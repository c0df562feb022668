package testutil

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/dotprofile/pkg/filesystem"
	"github.com/arthur-debert/dotprofile/pkg/paths"
	"github.com/arthur-debert/dotprofile/pkg/types"
	"github.com/stretchr/testify/require"
)

// EnvType defines the type of test environment
type EnvType int

const (
	EnvMemoryOnly EnvType = iota // Pure in-memory, no real filesystem
	EnvIsolated                  // Real filesystem in temp directory
)

// TestEnvironment bundles the directories and filesystem a test works in.
type TestEnvironment struct {
	ProfilesRoot string
	HomeDir      string
	DataDir      string

	FS   types.FS
	Type EnvType

	t *testing.T
}

// NewTestEnvironment creates a new test environment
func NewTestEnvironment(t *testing.T, envType EnvType) *TestEnvironment {
	t.Helper()

	env := &TestEnvironment{t: t, Type: envType}

	var base string
	switch envType {
	case EnvMemoryOnly:
		base = "/test"
		env.FS = filesystem.NewMemory()
	case EnvIsolated:
		base = t.TempDir()
		env.FS = filesystem.NewOS()
	}

	env.HomeDir = filepath.Join(base, "home")
	env.ProfilesRoot = filepath.Join(env.HomeDir, ".config", "dotprofile", "profiles")
	env.DataDir = filepath.Join(base, "data")

	for _, dir := range []string{env.HomeDir, env.ProfilesRoot, env.DataDir} {
		require.NoError(t, env.FS.MkdirAll(dir, 0755))
	}

	t.Setenv(paths.EnvHome, env.HomeDir)
	t.Setenv(paths.EnvProfilesRoot, env.ProfilesRoot)
	t.Setenv(paths.EnvDataDir, env.DataDir)

	return env
}

// Guard returns a path guard rooted at the environment's home. Memory
// environments skip symlink resolution since their paths are not on disk.
func (env *TestEnvironment) Guard(protected ...string) *paths.Guard {
	g := paths.NewGuard(env.HomeDir, protected...)
	if env.Type == EnvMemoryOnly {
		g.WithResolver(nil)
	}
	return g
}

// Home returns an absolute path inside the home directory.
func (env *TestEnvironment) Home(rel string) string {
	return filepath.Join(env.HomeDir, rel)
}

// WriteFile creates path with content, making parent directories.
func (env *TestEnvironment) WriteFile(path, content string) string {
	env.t.Helper()
	require.NoError(env.t, env.FS.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(env.t, env.FS.WriteFile(path, []byte(content), 0644))
	return path
}

// ReadFile returns the content of path, failing the test if it is missing.
func (env *TestEnvironment) ReadFile(path string) string {
	env.t.Helper()
	data, err := env.FS.ReadFile(path)
	require.NoError(env.t, err, "reading %s", path)
	return string(data)
}

// Profile starts building a profile directory named name.
func (env *TestEnvironment) Profile(name string) *ProfileBuilder {
	dir := filepath.Join(env.ProfilesRoot, name)
	require.NoError(env.t, env.FS.MkdirAll(dir, 0755))
	return &ProfileBuilder{env: env, Name: name, Dir: dir}
}
