package paths_test

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/dotprofile/pkg/paths"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(paths.EnvConfigDir, filepath.Join(home, "cfg"))
	t.Setenv(paths.EnvDataDir, filepath.Join(home, "data"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(home, "state"))

	t.Run("default_root_under_config", func(t *testing.T) {
		t.Setenv(paths.EnvProfilesRoot, "")
		p, err := paths.New("")
		require.NoError(t, err)

		assert.Equal(t, filepath.Join(home, "cfg", "profiles"), p.ProfilesRoot())
		assert.Equal(t, filepath.Join(home, "cfg", "profiles", "work"), p.ProfileDir("work"))
		assert.Equal(t, filepath.Join(home, "cfg", "config.toml"), p.ConfigFilePath())
		assert.Equal(t, filepath.Join(home, "cfg", "themes"), p.ThemesDir())
		assert.Equal(t, filepath.Join(home, "data", "overlay-ledger.json"), p.LedgerPath())
		assert.Equal(t, filepath.Join(home, "state", "dotprofile", "events.jsonl"), p.LogFilePath())
		assert.Equal(t, home, p.HomeDir())
	})

	t.Run("env_root", func(t *testing.T) {
		t.Setenv(paths.EnvProfilesRoot, "~/my-profiles")
		p, err := paths.New("")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, "my-profiles"), p.ProfilesRoot())
	})

	t.Run("explicit_root_wins", func(t *testing.T) {
		t.Setenv(paths.EnvProfilesRoot, "/ignored")
		p, err := paths.New("/explicit/root")
		require.NoError(t, err)
		assert.Equal(t, "/explicit/root", p.ProfilesRoot())
	})
}

func TestExpandHome(t *testing.T) {
	t.Setenv("HOME", "/home/bob")

	assert.Equal(t, "/home/bob", paths.ExpandHome("~"))
	assert.Equal(t, "/home/bob/.zshrc", paths.ExpandHome("~/.zshrc"))
	assert.Equal(t, "~alice/.zshrc", paths.ExpandHome("~alice/.zshrc"))
	assert.Equal(t, "/etc/hosts", paths.ExpandHome("/etc/hosts"))
	assert.Equal(t, "", paths.ExpandHome(""))
}
