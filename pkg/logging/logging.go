package logging

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// SetupLogger points the global logger at stderr. When logFile is set,
// every event is also appended to it as a JSON line, whatever the
// verbosity shown on the console. A log file that cannot be opened costs
// one warning and nothing else.
func SetupLogger(verbosity int, logFile string) {
	zerolog.SetGlobalLevel(levelFor(verbosity))

	console := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.Kitchen,
		NoColor:    os.Getenv("NO_COLOR") != "",
	}
	out := []io.Writer{console}

	var openErr error
	if logFile != "" {
		var f *os.File
		if f, openErr = openAppend(logFile); openErr == nil {
			out = append(out, f)
		}
	}

	ctx := zerolog.New(io.MultiWriter(out...)).With().Timestamp()
	if verbosity >= 2 {
		ctx = ctx.Caller()
	}
	log.Logger = ctx.Logger()

	if openErr != nil {
		log.Warn().Err(openErr).Str("path", logFile).Msg("Log file unavailable, console only")
	}
	log.Debug().Int("verbosity", verbosity).Str("log_file", logFile).Msg("Logger ready")
}

// SetupTestLogger routes all logging to w at the given level. Tests use it
// to keep output quiet or to capture it.
func SetupTestLogger(w io.Writer, level zerolog.Level) {
	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(w).With().Timestamp().Logger()
}

// levelFor maps -v counts: none warns, -v informs, -vv debugs, more traces.
func levelFor(verbosity int) zerolog.Level {
	switch {
	case verbosity <= 0:
		return zerolog.WarnLevel
	case verbosity == 1:
		return zerolog.InfoLevel
	case verbosity == 2:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}

// GetLogger returns the global logger tagged with component=name.
func GetLogger(name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}

func openAppend(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
}

// LogOperationStart logs at debug that operation began and returns a func
// that logs its duration.
func LogOperationStart(logger zerolog.Logger, operation string) func() {
	start := time.Now()
	logger.Debug().Str("operation", operation).Msg("Operation started")
	return func() {
		logger.Debug().
			Str("operation", operation).
			Dur("duration", time.Since(start)).
			Msg("Operation completed")
	}
}
