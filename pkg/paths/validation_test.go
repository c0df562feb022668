// Test Type: Unit Test
// Description: Tests for the paths package - path and profile name validation

package paths_test

import (
	"strings"
	"testing"

	"github.com/arthur-debert/dotprofile/pkg/errors"
	"github.com/arthur-debert/dotprofile/pkg/paths"
	"github.com/stretchr/testify/assert"
)

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name        string
		path        string
		expectError bool
	}{
		{name: "valid_path", path: "/home/user/profiles"},
		{name: "relative_path", path: "relative/path"},
		{name: "empty_path", path: "", expectError: true},
		{name: "null_bytes", path: "/path/with\x00null", expectError: true},
		{name: "too_long", path: "/" + strings.Repeat("a", 4096), expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := paths.ValidatePath(tt.path)
			if tt.expectError {
				assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateProfileName(t *testing.T) {
	tests := []struct {
		name        string
		profileName string
		expectError bool
	}{
		{name: "simple", profileName: "work"},
		{name: "with_spaces", profileName: "Late Night Coding"},
		{name: "unicode", profileName: "café"},
		{name: "exactly_fifty", profileName: strings.Repeat("a", 50)},
		{name: "fifty_one", profileName: strings.Repeat("a", 51), expectError: true},
		{name: "empty", profileName: "", expectError: true},
		{name: "blank", profileName: "   ", expectError: true},
		{name: "slash", profileName: "work/home", expectError: true},
		{name: "backslash", profileName: "work\\home", expectError: true},
		{name: "colon", profileName: "work:1", expectError: true},
		{name: "star", profileName: "work*", expectError: true},
		{name: "question", profileName: "work?", expectError: true},
		{name: "quote", profileName: "work\"", expectError: true},
		{name: "angle", profileName: "<work>", expectError: true},
		{name: "pipe", profileName: "a|b", expectError: true},
		{name: "control", profileName: "work\x07", expectError: true},
		{name: "dot", profileName: ".", expectError: true},
		{name: "dotdot", profileName: "..", expectError: true},
		{name: "reserved_default", profileName: "default", expectError: true},
		{name: "reserved_case_insensitive", profileName: "Active", expectError: true},
		{name: "reserved_backup", profileName: "backup", expectError: true},
		{name: "reserved_prefix_is_fine", profileName: "defaults", expectError: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := paths.ValidateProfileName(tt.profileName)
			if tt.expectError {
				assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput), "got %v", err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateRelativePath(t *testing.T) {
	assert.NoError(t, paths.ValidateRelativePath("scripts/start.sh"))
	assert.NoError(t, paths.ValidateRelativePath("./wallpaper.png"))
	assert.Error(t, paths.ValidateRelativePath("/abs/start.sh"))
	assert.Error(t, paths.ValidateRelativePath("../escape.sh"))
	assert.Error(t, paths.ValidateRelativePath("a/../../escape.sh"))
	assert.Error(t, paths.ValidateRelativePath(""))
}

func TestContainsPath(t *testing.T) {
	assert.True(t, paths.ContainsPath("/home/user", "/home/user"))
	assert.True(t, paths.ContainsPath("/home/user", "/home/user/.zshrc"))
	assert.True(t, paths.ContainsPath("/home/user/", "/home/user/a/../b"))
	assert.False(t, paths.ContainsPath("/home/user", "/home/user2/.zshrc"))
	assert.False(t, paths.ContainsPath("/home/user", "/home"))
	assert.True(t, paths.ContainsPath("/home/user", "/home/user/..hidden"))
}
