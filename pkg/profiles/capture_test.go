// Test Type: Unit Test
// Description: Tests for capturing live files into a new profile

package profiles_test

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/dotprofile/pkg/errors"
	"github.com/arthur-debert/dotprofile/pkg/profiles"
	"github.com/arthur-debert/dotprofile/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCapture(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.WriteFile(env.Home(".zshrc"), "zsh")
	env.WriteFile(env.Home(".config/kitty/kitty.conf"), "kitty")
	env.WriteFile(env.Home(".config/kitty/theme.conf"), "theme")

	result, err := profiles.Capture(env.FS, profiles.CaptureOptions{
		Root:  env.ProfilesRoot,
		Name:  "snapshot",
		Home:  env.HomeDir,
		Paths: []string{"~/.zshrc", env.Home(".config/kitty")},
	})
	require.NoError(t, err)

	assert.Equal(t, "snapshot", result.Descriptor.ID)
	assert.Equal(t, "snapshot", result.Descriptor.Profile.Name)
	assert.Len(t, result.Files, 3)

	dir := filepath.Join(env.ProfilesRoot, "snapshot")
	testutil.AssertFileContent(t, env.FS, filepath.Join(dir, "home", ".zshrc"), "zsh")
	testutil.AssertFileContent(t, env.FS, filepath.Join(dir, "home", ".config/kitty/kitty.conf"), "kitty")
	assert.True(t, testutil.FileExists(env.FS, filepath.Join(dir, "profile.json")))
}

func TestCapture_SkipsProfilesRoot(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.Profile("existing").Manifest(`{}`)
	env.WriteFile(env.Home(".config/app.conf"), "app")

	result, err := profiles.Capture(env.FS, profiles.CaptureOptions{
		Root:  env.ProfilesRoot,
		Name:  "config",
		Home:  env.HomeDir,
		Paths: []string{"~/.config"},
	})
	require.NoError(t, err)
	require.Len(t, result.Files, 1)
	assert.Equal(t, env.Home(".config/app.conf"), result.Files[0].From)
}

func TestCapture_Errors(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.WriteFile(env.Home(".zshrc"), "zsh")
	env.Profile("taken").Manifest(`{}`)

	tests := []struct {
		name string
		opts profiles.CaptureOptions
		code errors.ErrorCode
	}{
		{name: "reserved_name", opts: profiles.CaptureOptions{Name: "current", Paths: []string{"~/.zshrc"}}, code: errors.ErrInvalidInput},
		{name: "no_paths", opts: profiles.CaptureOptions{Name: "new"}, code: errors.ErrInvalidInput},
		{name: "exists", opts: profiles.CaptureOptions{Name: "taken", Paths: []string{"~/.zshrc"}}, code: errors.ErrAlreadyExists},
		{name: "outside_home", opts: profiles.CaptureOptions{Name: "new", Paths: []string{"/etc/hosts"}}, code: errors.ErrInvalidInput},
		{name: "whole_home", opts: profiles.CaptureOptions{Name: "new", Paths: []string{"~"}}, code: errors.ErrInvalidInput},
		{name: "missing", opts: profiles.CaptureOptions{Name: "new", Paths: []string{"~/.nope"}}, code: errors.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.opts.Root = env.ProfilesRoot
			tt.opts.Home = env.HomeDir
			_, err := profiles.Capture(env.FS, tt.opts)
			require.Error(t, err)
			assert.Equal(t, tt.code, errors.GetErrorCode(err))
		})
	}
}

func TestCapture_ForceIntoExisting(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.WriteFile(env.Home(".zshrc"), "new zsh")
	env.Profile("work").Manifest(`{"name": "Work", "order": 4}`).Home(".zshrc", "old zsh")

	result, err := profiles.Capture(env.FS, profiles.CaptureOptions{
		Root: env.ProfilesRoot, Name: "work", Home: env.HomeDir,
		Paths: []string{".zshrc"}, Force: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 4, result.Descriptor.Profile.Order)
	testutil.AssertFileContent(t, env.FS, filepath.Join(env.ProfilesRoot, "work", "home", ".zshrc"), "new zsh")
}
