package system

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"time"

	"github.com/arthur-debert/dotprofile/pkg/errors"
	"github.com/arthur-debert/dotprofile/pkg/logging"
)

// DefaultStartupTimeout bounds a startup script when none is configured.
const DefaultStartupTimeout = 30 * time.Second

// StartupScript runs profile startup scripts.
type StartupScript struct {
	Timeout time.Duration
	// Shell runs scripts that are not executable; defaults to /bin/sh
	Shell string
	// Env is appended to the inherited environment
	Env []string
}

// NewStartupScript returns a runner with the given timeout.
func NewStartupScript(timeout time.Duration) *StartupScript {
	return &StartupScript{Timeout: timeout}
}

// RunStartupScript runs path with workDir as its working directory and
// returns the exit status. Timeouts, launch failures and non-zero exits
// are STARTUP_SCRIPT errors; cancellation of ctx is reported as CANCELLED.
func (s *StartupScript) RunStartupScript(ctx context.Context, path, workDir string) (int, error) {
	logger := logging.GetLogger("system.startup").With().Str("script", path).Logger()

	info, err := os.Stat(path)
	if err != nil {
		return -1, errors.Wrap(err, errors.ErrStartupScript, "startup script not found").
			WithDetail("script", path)
	}
	if info.IsDir() {
		return -1, errors.New(errors.ErrStartupScript, "startup script is a directory").
			WithDetail("script", path)
	}

	argv := []string{path}
	if info.Mode().Perm()&0111 == 0 {
		shell := s.Shell
		if shell == "" {
			shell = "/bin/sh"
		}
		argv = []string{shell, path}
	}

	timeout := s.Timeout
	if timeout <= 0 {
		timeout = DefaultStartupTimeout
	}
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	env := append([]string{
		"DOTPROFILE_PROFILE=" + filepath.Base(workDir),
		"DOTPROFILE_PROFILE_DIR=" + workDir,
	}, s.Env...)

	start := time.Now()
	res, err := run(runCtx, logger, argv, workDir, env)
	elapsed := time.Since(start)

	switch {
	case err != nil && stderrors.Is(ctx.Err(), context.Canceled):
		return -1, errors.Wrap(ctx.Err(), errors.ErrCancelled, "startup script cancelled").
			WithDetail("script", path)
	case err != nil && stderrors.Is(err, context.DeadlineExceeded):
		logger.Warn().Dur("timeout", timeout).Msg("startup script timed out")
		return -1, errors.Wrapf(err, errors.ErrStartupScript, "startup script timed out after %s", timeout).
			WithDetail("script", path).
			WithDetail("output", res.output)
	case err != nil:
		return -1, errors.Wrap(err, errors.ErrStartupScript, "startup script failed to run").
			WithDetail("script", path)
	case res.exitCode != 0:
		logger.Warn().Int("exit", res.exitCode).Msg("startup script exited non-zero")
		return res.exitCode, errors.Newf(errors.ErrStartupScript, "startup script exited with status %d", res.exitCode).
			WithDetail("script", path).
			WithDetail("exit_code", res.exitCode).
			WithDetail("output", res.output)
	}

	logger.Info().Dur("elapsed", elapsed).Msg("startup script finished")
	return 0, nil
}
