package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLogger(t *testing.T) {
	tests := []struct {
		name      string
		verbosity int
		wantLevel zerolog.Level
	}{
		{"default warn level", 0, zerolog.WarnLevel},
		{"info level", 1, zerolog.InfoLevel},
		{"debug level", 2, zerolog.DebugLevel},
		{"trace level", 3, zerolog.TraceLevel},
		{"high verbosity defaults to trace", 5, zerolog.TraceLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logPath := filepath.Join(t.TempDir(), "state", "events.jsonl")

			SetupLogger(tt.verbosity, logPath)

			assert.Equal(t, tt.wantLevel, zerolog.GlobalLevel())
			_, err := os.Stat(logPath)
			assert.NoError(t, err, "log file should exist at %s", logPath)
		})
	}
}

func TestSetupLogger_FileReceivesJSON(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "events.jsonl")
	SetupLogger(1, logPath)

	logger := GetLogger("apply")
	logger.Info().Str("profile", "work").Msg("apply completed")

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"component":"apply"`)
	assert.Contains(t, string(data), `"profile":"work"`)
}

func TestSetupLogger_UnwritableFileFallsBackToConsole(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))

	// the parent is a regular file, so the log cannot be created
	SetupLogger(0, filepath.Join(blocker, "events.jsonl"))
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())
}

func TestSetupLogger_NoFile(t *testing.T) {
	SetupLogger(2, "")
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
}

func TestGetLoggerAddsComponent(t *testing.T) {
	var buf bytes.Buffer
	SetupTestLogger(&buf, zerolog.InfoLevel)

	logger := GetLogger("overlay")
	logger.Info().Msg("hello")

	assert.Contains(t, buf.String(), `"component":"overlay"`)
	assert.Contains(t, buf.String(), `"message":"hello"`)
}
