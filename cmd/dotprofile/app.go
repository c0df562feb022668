package dotprofile

import (
	"io"
	"os"

	"github.com/arthur-debert/dotprofile/pkg/apply"
	"github.com/arthur-debert/dotprofile/pkg/config"
	"github.com/arthur-debert/dotprofile/pkg/filesystem"
	"github.com/arthur-debert/dotprofile/pkg/logging"
	"github.com/arthur-debert/dotprofile/pkg/overlay"
	"github.com/arthur-debert/dotprofile/pkg/paths"
	"github.com/arthur-debert/dotprofile/pkg/profiles"
	"github.com/arthur-debert/dotprofile/pkg/system"
	"github.com/arthur-debert/dotprofile/pkg/themes"
	"github.com/arthur-debert/dotprofile/pkg/types"
	"github.com/arthur-debert/dotprofile/pkg/ui"
)

// globalOptions are the persistent flags shared by every command.
type globalOptions struct {
	verbosity  int
	configFile string
	root       string
	format     string
}

// app is everything a command needs, wired from configuration.
type app struct {
	cfg      *config.Config
	paths    paths.Paths
	fs       types.FS
	source   *profiles.Source
	ledger   *overlay.FileLedger
	engine   *overlay.Engine
	orch     *apply.Orchestrator
	renderer ui.Renderer
	format   ui.Format
}

// newApp loads configuration and builds the collaborators. Precedence for
// the profiles root is --root, then DOTPROFILE_ROOT, then profiles.root.
func newApp(opts *globalOptions, out io.Writer) (*app, error) {
	format, err := ui.ParseFormat(opts.format)
	if err != nil {
		return nil, err
	}
	renderer, err := ui.NewRenderer(format, out)
	if err != nil {
		return nil, err
	}

	p, err := paths.New(opts.root)
	if err != nil {
		return nil, err
	}
	configFile := opts.configFile
	if configFile == "" {
		configFile = p.ConfigFilePath()
	}
	overrides := map[string]interface{}{}
	if opts.root != "" {
		overrides["profiles.root"] = p.ProfilesRoot()
	}
	cfg, err := config.Load(configFile, overrides)
	if err != nil {
		return nil, err
	}
	if opts.root == "" && os.Getenv(paths.EnvProfilesRoot) == "" && cfg.Profiles.Root != "" {
		if p, err = paths.New(cfg.Profiles.Root); err != nil {
			return nil, err
		}
	}

	fsys := filesystem.NewOS()
	ledger, err := overlay.LoadLedger(fsys, p.LedgerPath())
	if err != nil {
		return nil, err
	}

	guard := paths.NewGuard(p.HomeDir(), cfg.Safety.ProtectedPaths...)
	engine := overlay.NewEngine(fsys, guard, ledger, p.HomeDir())
	engine.BackupSuffix = cfg.Overlay.BackupSuffix
	engine.MaxBackups = cfg.Overlay.MaxBackups

	source := profiles.NewSource(fsys, p.ProfilesRoot())

	terminal := &system.CommandTerminalTheme{Argv: cfg.Collaborators.TerminalThemeCommand}
	if len(terminal.Argv) > 0 {
		themesDir := cfg.Collaborators.ThemesDir
		if themesDir == "" {
			themesDir = p.ThemesDir()
		}
		terminal.Catalog = themes.NewDirCatalog(fsys, paths.ExpandHome(themesDir))
	}

	orch := apply.New(apply.Deps{
		FS:            fsys,
		Profiles:      source,
		Overlay:       engine,
		Wallpaper:     &system.CommandWallpaper{Argv: cfg.Collaborators.WallpaperCommand},
		Terminal:      terminal,
		Startup:       system.NewStartupScript(cfg.Apply.StartupTimeout),
		RecencyWindow: cfg.Apply.RecencyWindow,
		StepTimeout:   cfg.Apply.StartupTimeout,
	})

	logger := logging.GetLogger("cmd")
	logger.Debug().
		Str("root", p.ProfilesRoot()).
		Str("config", configFile).
		Str("ledger", p.LedgerPath()).
		Str("format", format.String()).
		Msg("app initialized")

	return &app{
		cfg:      cfg,
		paths:    p,
		fs:       fsys,
		source:   source,
		ledger:   ledger,
		engine:   engine,
		orch:     orch,
		renderer: renderer,
		format:   format,
	}, nil
}

// activeProfile is the profile whose files were last written, as
// recorded in the ledger.
func (a *app) activeProfile() string {
	var (
		latest  string
		entryAt int64
	)
	for _, dest := range a.ledger.Destinations() {
		e, ok := a.ledger.Lookup(dest)
		if !ok {
			continue
		}
		if t := e.WrittenAt.UnixNano(); latest == "" || t > entryAt {
			latest, entryAt = e.Profile, t
		}
	}
	return latest
}
