package apply

import (
	"context"

	"github.com/arthur-debert/dotprofile/pkg/types"
)

// ProfileSource loads a profile by ID.
type ProfileSource interface {
	Load(id string) (types.ProfileDescriptor, error)
}

// WallpaperSetter sets the desktop wallpaper.
type WallpaperSetter interface {
	SetWallpaper(ctx context.Context, path string) error
}

// TerminalThemeApplier switches a terminal's theme.
type TerminalThemeApplier interface {
	ApplyTerminalTheme(ctx context.Context, kind types.TerminalKind, theme string) error
}

// StartupRunner runs a startup script and reports its exit status.
type StartupRunner interface {
	RunStartupScript(ctx context.Context, path, workDir string) (int, error)
}
