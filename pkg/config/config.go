package config

import (
	"runtime"
	"time"
)

// Profiles holds profile discovery settings
type Profiles struct {
	Root string `koanf:"root" toml:"root"`
}

// Apply holds apply pipeline settings
type Apply struct {
	RecencyWindow  time.Duration `koanf:"recency_window" toml:"recency_window"`
	StartupTimeout time.Duration `koanf:"startup_timeout" toml:"startup_timeout"`
}

// Watch holds file watching settings
type Watch struct {
	Debounce        time.Duration `koanf:"debounce" toml:"debounce"`
	ReapplyInterval time.Duration `koanf:"reapply_interval" toml:"reapply_interval"`
}

// Overlay holds backup and overlay settings
type Overlay struct {
	BackupSuffix string `koanf:"backup_suffix" toml:"backup_suffix"`
	MaxBackups   int    `koanf:"max_backups" toml:"max_backups"`
}

// Safety holds write-protection settings
type Safety struct {
	ProtectedPaths []string `koanf:"protected_paths" toml:"protected_paths"`
}

// Collaborators configures the external capabilities the apply pipeline calls
type Collaborators struct {
	WallpaperCommand     []string `koanf:"wallpaper_command" toml:"wallpaper_command"`
	TerminalThemeCommand []string `koanf:"terminal_theme_command" toml:"terminal_theme_command"`
	ThemesDir            string   `koanf:"themes_dir" toml:"themes_dir"`
}

// Config is the main configuration structure
type Config struct {
	Profiles      Profiles      `koanf:"profiles" toml:"profiles"`
	Apply         Apply         `koanf:"apply" toml:"apply"`
	Watch         Watch         `koanf:"watch" toml:"watch"`
	Overlay       Overlay       `koanf:"overlay" toml:"overlay"`
	Safety        Safety        `koanf:"safety" toml:"safety"`
	Collaborators Collaborators `koanf:"collaborators" toml:"collaborators"`
}

// Default returns the built-in configuration. It never fails: if the
// embedded defaults cannot be loaded, hardcoded values are used.
func Default() *Config {
	cfg, err := Load("", nil)
	if err != nil {
		cfg = &Config{
			Profiles: Profiles{Root: "~/.config/dotprofile/profiles"},
			Apply: Apply{
				RecencyWindow:  1500 * time.Millisecond,
				StartupTimeout: 30 * time.Second,
			},
			Watch:   Watch{Debounce: 400 * time.Millisecond},
			Overlay: Overlay{BackupSuffix: ".bak", MaxBackups: 3},
		}
		applyPlatformDefaults(cfg)
	}
	return cfg
}

// applyPlatformDefaults fills settings whose default depends on the OS.
func applyPlatformDefaults(cfg *Config) {
	if len(cfg.Collaborators.WallpaperCommand) == 0 && runtime.GOOS == "darwin" {
		cfg.Collaborators.WallpaperCommand = []string{
			"osascript", "-e",
			`tell application "System Events" to tell every desktop to set picture to "{path}"`,
		}
	}
}

// ToMap renders the configuration as nested maps with durations as
// strings, the shape used for TOML output.
func (c *Config) ToMap() map[string]interface{} {
	return map[string]interface{}{
		"profiles": map[string]interface{}{
			"root": c.Profiles.Root,
		},
		"apply": map[string]interface{}{
			"recency_window":  c.Apply.RecencyWindow.String(),
			"startup_timeout": c.Apply.StartupTimeout.String(),
		},
		"watch": map[string]interface{}{
			"debounce":         c.Watch.Debounce.String(),
			"reapply_interval": c.Watch.ReapplyInterval.String(),
		},
		"overlay": map[string]interface{}{
			"backup_suffix": c.Overlay.BackupSuffix,
			"max_backups":   c.Overlay.MaxBackups,
		},
		"safety": map[string]interface{}{
			"protected_paths": nonNil(c.Safety.ProtectedPaths),
		},
		"collaborators": map[string]interface{}{
			"wallpaper_command":      nonNil(c.Collaborators.WallpaperCommand),
			"terminal_theme_command": nonNil(c.Collaborators.TerminalThemeCommand),
			"themes_dir":             c.Collaborators.ThemesDir,
		},
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
