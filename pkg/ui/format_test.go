package ui_test

import (
	"bytes"
	"os"
	"testing"

	"github.com/arthur-debert/dotprofile/pkg/errors"
	"github.com/arthur-debert/dotprofile/pkg/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatString(t *testing.T) {
	tests := []struct {
		format   ui.Format
		expected string
	}{
		{ui.FormatAuto, "auto"},
		{ui.FormatTerminal, "term"},
		{ui.FormatText, "text"},
		{ui.FormatJSON, "json"},
		{ui.Format(999), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.format.String())
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected ui.Format
		wantErr  bool
	}{
		{"", ui.FormatAuto, false},
		{"auto", ui.FormatAuto, false},
		{"term", ui.FormatTerminal, false},
		{"TERMINAL", ui.FormatTerminal, false},
		{"text", ui.FormatText, false},
		{"plain", ui.FormatText, false},
		{"json", ui.FormatJSON, false},
		{"yaml", ui.FormatAuto, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ui.ParseFormat(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseFormat_RoundTripsEveryFormat(t *testing.T) {
	for _, f := range ui.Formats {
		got, err := ui.ParseFormat(f.String())
		require.NoError(t, err)
		assert.Equal(t, f, got)
	}
}

func TestDetectFormat(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "out")
	require.NoError(t, err)
	defer f.Close()

	// a regular file is never a terminal
	assert.Equal(t, ui.FormatText, ui.DetectFormat(f))

	t.Setenv("NO_COLOR", "1")
	assert.Equal(t, ui.FormatText, ui.DetectFormat(os.Stdout))
}

func TestDetectFormat_NonFileWriterIsText(t *testing.T) {
	var buf bytes.Buffer
	assert.Equal(t, ui.FormatText, ui.DetectFormat(&buf))
}
