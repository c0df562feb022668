package system

import (
	"context"
	"os"

	"github.com/arthur-debert/dotprofile/pkg/errors"
	"github.com/arthur-debert/dotprofile/pkg/logging"
)

// CommandWallpaper sets the wallpaper by running a configured command. The
// placeholder {path} is replaced by the image path.
type CommandWallpaper struct {
	Argv []string
}

// SetWallpaper runs the wallpaper command for path.
func (w *CommandWallpaper) SetWallpaper(ctx context.Context, path string) error {
	logger := logging.GetLogger("system.wallpaper").With().Str("path", path).Logger()

	if _, err := os.Stat(path); err != nil {
		return errors.Wrap(err, errors.ErrWallpaperSet, "wallpaper image not found").
			WithDetail("path", path)
	}
	if len(w.Argv) == 0 {
		logger.Info().Msg("no wallpaper command configured, skipping")
		return nil
	}

	res, err := run(ctx, logger, Expand(w.Argv, map[string]string{"path": path}), "", nil)
	if err != nil {
		return errors.Wrap(err, errors.ErrWallpaperSet, "wallpaper command failed").
			WithDetail("path", path)
	}
	if res.exitCode != 0 {
		return errors.Newf(errors.ErrWallpaperSet, "wallpaper command exited with status %d", res.exitCode).
			WithDetail("path", path).
			WithDetail("output", res.output)
	}
	logger.Info().Msg("wallpaper set")
	return nil
}
