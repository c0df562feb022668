package system

import (
	"context"

	"github.com/arthur-debert/dotprofile/pkg/errors"
	"github.com/arthur-debert/dotprofile/pkg/logging"
	"github.com/arthur-debert/dotprofile/pkg/themes"
	"github.com/arthur-debert/dotprofile/pkg/types"
)

// CommandTerminalTheme applies terminal themes by running a configured
// command with {kind}, {theme} and {path} placeholders. When a catalog is
// set the theme must exist in it and {path} is its file.
type CommandTerminalTheme struct {
	Argv    []string
	Catalog themes.Catalog
}

// ApplyTerminalTheme switches terminal kind to the named theme.
func (c *CommandTerminalTheme) ApplyTerminalTheme(ctx context.Context, kind types.TerminalKind, theme string) error {
	logger := logging.GetLogger("system.terminal").With().
		Str("kind", string(kind)).Str("theme", theme).Logger()

	vars := map[string]string{"kind": string(kind), "theme": theme, "path": ""}
	if c.Catalog != nil {
		t, err := c.Catalog.Lookup(kind, theme)
		if err != nil {
			return errors.Wrap(err, errors.ErrTerminalTheme, "theme lookup failed").
				WithDetail("kind", string(kind)).
				WithDetail("theme", theme)
		}
		vars["path"] = t.Path
	}

	if len(c.Argv) == 0 {
		logger.Info().Msg("no terminal theme command configured, skipping")
		return nil
	}

	res, err := run(ctx, logger, Expand(c.Argv, vars), "", nil)
	if err != nil {
		return errors.Wrap(err, errors.ErrTerminalTheme, "terminal theme command failed").
			WithDetail("kind", string(kind)).
			WithDetail("theme", theme)
	}
	if res.exitCode != 0 {
		return errors.Newf(errors.ErrTerminalTheme, "terminal theme command exited with status %d", res.exitCode).
			WithDetail("kind", string(kind)).
			WithDetail("theme", theme).
			WithDetail("output", res.output)
	}
	logger.Info().Msg("terminal theme applied")
	return nil
}
