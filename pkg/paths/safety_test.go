// Test Type: Unit Test
// Description: Tests for the Path Safety Guard

package paths_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/dotprofile/pkg/errors"
	"github.com/arthur-debert/dotprofile/pkg/paths"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuardIsSafeWritePath(t *testing.T) {
	guard := paths.NewGuard("/home/alice", ".ssh/authorized_keys", "/srv/locked").WithResolver(nil)

	tests := []struct {
		name string
		path string
		safe bool
	}{
		{name: "home_dotfile", path: "/home/alice/.zshrc", safe: true},
		{name: "home_nested", path: "/home/alice/.config/kitty/kitty.conf", safe: true},
		{name: "temp_tree", path: "/tmp/dotprofile/test.conf", safe: true},
		{name: "var_tmp_tree", path: "/var/tmp/x", safe: true},
		{name: "other_user_data", path: "/srv/data/file", safe: true},
		{name: "system_binary", path: "/usr/bin/ls", safe: false},
		{name: "usr_local", path: "/usr/local/bin/tool", safe: false},
		{name: "bin", path: "/bin/sh", safe: false},
		{name: "etc", path: "/etc/hosts", safe: false},
		{name: "etc_itself", path: "/etc", safe: false},
		{name: "macos_system", path: "/System/Library/x", safe: false},
		{name: "var_log", path: "/var/log/syslog", safe: false},
		{name: "root", path: "/", safe: false},
		{name: "relative", path: ".zshrc", safe: false},
		{name: "traversal_into_etc", path: "/home/alice/../../etc/passwd", safe: false},
		{name: "protected_relative_to_home", path: "/home/alice/.ssh/authorized_keys", safe: false},
		{name: "protected_absolute", path: "/srv/locked/file", safe: false},
		{name: "sibling_of_protected", path: "/home/alice/.ssh/config", safe: true},
		{name: "empty", path: "", safe: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.safe, guard.IsSafeWritePath(tt.path))
			err := guard.Check(tt.path)
			if tt.safe {
				assert.NoError(t, err)
			} else {
				assert.True(t, errors.IsErrorCode(err, errors.ErrPathUnsafe), "got %v", err)
			}
		})
	}
}

func TestGuardHomeUnderSystemRoot(t *testing.T) {
	// macOS root's home lives under /var; the home tree still wins.
	guard := paths.NewGuard("/var/root").WithResolver(nil)
	assert.True(t, guard.IsSafeWritePath("/var/root/.zshrc"))
	assert.False(t, guard.IsSafeWritePath("/var/log/x"))
}

func TestGuardResolvesSymlinkedParents(t *testing.T) {
	home := t.TempDir()
	outside := t.TempDir()
	require.NoError(t, os.Symlink(outside, filepath.Join(home, "linked")))

	guard := paths.NewGuard(home, outside)

	assert.True(t, guard.IsSafeWritePath(filepath.Join(home, "plain.txt")))
	assert.False(t, guard.IsSafeWritePath(filepath.Join(home, "linked", "file.txt")),
		"writes through a symlink into a protected tree must be rejected")
	assert.True(t, guard.IsSafeWritePath(filepath.Join(home, "missing", "dir", "file.txt")))
}
