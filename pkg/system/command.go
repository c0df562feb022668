package system

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/arthur-debert/dotprofile/pkg/errors"
	"github.com/rs/zerolog"
)

// maxOutput bounds the command output kept for error details.
const maxOutput = 4096

const waitDelay = 500 * time.Millisecond

// Expand substitutes {name} placeholders in every argument.
func Expand(argv []string, vars map[string]string) []string {
	pairs := make([]string, 0, len(vars)*2)
	for k, v := range vars {
		pairs = append(pairs, "{"+k+"}", v)
	}
	r := strings.NewReplacer(pairs...)

	out := make([]string, len(argv))
	for i, arg := range argv {
		out[i] = r.Replace(arg)
	}
	return out
}

// result is what a finished command reported.
type result struct {
	exitCode int
	output   string
}

// run executes argv and returns its exit code. A non-zero exit is not an
// error at this level; failing to start or being killed by ctx is.
func run(ctx context.Context, logger zerolog.Logger, argv []string, dir string, env []string) (result, error) {
	if len(argv) == 0 || argv[0] == "" {
		return result{}, errors.New(errors.ErrInvalidInput, "empty command")
	}

	logger.Debug().Strs("argv", argv).Str("dir", dir).Msg("executing command")

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), env...)
	// grandchildren holding the output pipe must not outlive a kill
	cmd.WaitDelay = waitDelay

	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	err := cmd.Run()
	res := result{output: truncate(out.String())}
	if res.output != "" {
		logger.Debug().Str("output", res.output).Msg("command output")
	}

	if ctx.Err() != nil {
		return res, ctx.Err()
	}
	if exitErr, ok := err.(*exec.ExitError); ok {
		res.exitCode = exitErr.ExitCode()
		return res, nil
	}
	return res, err
}

func truncate(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > maxOutput {
		return s[:maxOutput] + "..."
	}
	return s
}
