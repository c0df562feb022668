// Test Type: Unit Test
// Description: Tests for shortcut normalization

package hotkey_test

import (
	"testing"

	"github.com/arthur-debert/dotprofile/pkg/errors"
	"github.com/arthur-debert/dotprofile/pkg/hotkey"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{name: "mixed_case_reordered", raw: "Cmd+Ctrl+1", expected: "ctrl+cmd+1"},
		{name: "already_canonical", raw: "ctrl+cmd+1", expected: "ctrl+cmd+1"},
		{name: "long_aliases", raw: "command+control+option+shift+k", expected: "ctrl+opt+shift+cmd+k"},
		{name: "alt_is_option", raw: "alt+f5", expected: "opt+f5"},
		{name: "whitespace", raw: " shift + cmd + Space ", expected: "shift+cmd+space"},
		{name: "esc_alias", raw: "ctrl+esc", expected: "ctrl+escape"},
		{name: "enter_distinct", raw: "cmd+enter", expected: "cmd+enter"},
		{name: "return", raw: "cmd+return", expected: "cmd+return"},
		{name: "arrow", raw: "opt+Left", expected: "opt+left"},
		{name: "punctuation", raw: "cmd+,", expected: "cmd+,"},
		{name: "backslash", raw: "cmd+\\", expected: "cmd+\\"},
		{name: "f12", raw: "ctrl+F12", expected: "ctrl+f12"},
		{name: "bare_key", raw: "f1", expected: "f1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := hotkey.Canonical(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestNormalize_EquivalentSpellings(t *testing.T) {
	a, err := hotkey.Normalize("Cmd+Ctrl+1")
	require.NoError(t, err)
	b, err := hotkey.Normalize("ctrl+cmd+1")
	require.NoError(t, err)

	assert.Equal(t, a.String(), b.String())
	assert.True(t, a.Has(hotkey.Control))
	assert.True(t, a.Has(hotkey.Command))
	assert.False(t, a.Has(hotkey.Shift))
	assert.Equal(t, "1", a.Key)
}

func TestNormalize_Invalid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "empty", raw: ""},
		{name: "blank", raw: "   "},
		{name: "repeated_modifier", raw: "cmd+cmd"},
		{name: "alias_repeat", raw: "alt+opt+a"},
		{name: "trailing_plus", raw: "shift+"},
		{name: "leading_plus", raw: "+a"},
		{name: "modifiers_only", raw: "ctrl+shift"},
		{name: "two_keys", raw: "cmd+a+b"},
		{name: "unknown_key", raw: "cmd+hyper"},
		{name: "f13", raw: "cmd+f13"},
		{name: "f0", raw: "cmd+f0"},
		{name: "non_ascii", raw: "cmd+é"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := hotkey.Normalize(tt.raw)
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidShortcut))
			assert.Equal(t, tt.raw, errors.DetailString(err, "shortcut"))
		})
	}
}
