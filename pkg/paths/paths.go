package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/dotprofile/pkg/errors"
)

// Environment variable names
const (
	// EnvProfilesRoot overrides the profiles root directory
	EnvProfilesRoot = "DOTPROFILE_ROOT"

	// EnvDataDir overrides the XDG data directory for dotprofile
	EnvDataDir = "DOTPROFILE_DATA_DIR"

	// EnvConfigDir overrides the XDG config directory for dotprofile
	EnvConfigDir = "DOTPROFILE_CONFIG_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Fixed names inside the tool's own directories. These are not
// user-configurable.
const (
	AppDirName       = "dotprofile"
	ProfilesDirName  = "profiles"
	ThemesDirName    = "themes"
	ConfigFileName   = "config.toml"
	LedgerFileName   = "overlay-ledger.json"
	LogFileName      = "events.jsonl"
	HomeDirName      = "home"
	TemplatesDirName = "templates"
	VariablesFile    = "variables.json"
)

// Paths provides centralized path management for dotprofile
type Paths interface {
	ProfilesRoot() string
	ProfileDir(id string) string
	HomeDir() string
	ConfigDir() string
	ConfigFilePath() string
	DataDir() string
	StateDir() string
	ThemesDir() string
	LedgerPath() string
	LogFilePath() string
}

type paths struct {
	profilesRoot string
	home         string
	xdgData      string
	xdgConfig    string
	xdgState     string
}

// New creates a Paths instance. An empty profilesRoot falls back to
// DOTPROFILE_ROOT and then to <config dir>/profiles.
func New(profilesRoot string) (Paths, error) {
	home, err := GetHomeDirectory()
	if err != nil {
		return nil, err
	}

	p := &paths{home: home}
	p.setupXDGDirs()

	if profilesRoot == "" {
		profilesRoot = os.Getenv(EnvProfilesRoot)
	}
	if profilesRoot == "" {
		profilesRoot = filepath.Join(p.xdgConfig, ProfilesDirName)
	}

	absRoot, err := filepath.Abs(ExpandHome(profilesRoot))
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, "failed to get absolute path for profiles root")
	}
	p.profilesRoot = absRoot

	return p, nil
}

// setupXDGDirs initializes XDG directories, respecting environment overrides
func (p *paths) setupXDGDirs() {
	if dataDir := os.Getenv(EnvDataDir); dataDir != "" {
		p.xdgData = ExpandHome(dataDir)
	} else {
		p.xdgData = filepath.Join(xdg.DataHome, AppDirName)
	}

	if configDir := os.Getenv(EnvConfigDir); configDir != "" {
		p.xdgConfig = ExpandHome(configDir)
	} else {
		p.xdgConfig = filepath.Join(xdg.ConfigHome, AppDirName)
	}

	// xdg caches its values at init; read the variable directly so tests
	// that set it late still take effect.
	if stateDir := os.Getenv("XDG_STATE_HOME"); stateDir != "" {
		p.xdgState = filepath.Join(stateDir, AppDirName)
	} else {
		p.xdgState = filepath.Join(xdg.StateHome, AppDirName)
	}
}

func (p *paths) ProfilesRoot() string { return p.profilesRoot }

func (p *paths) ProfileDir(id string) string {
	return filepath.Join(p.profilesRoot, id)
}

func (p *paths) HomeDir() string        { return p.home }
func (p *paths) ConfigDir() string      { return p.xdgConfig }
func (p *paths) ConfigFilePath() string { return filepath.Join(p.xdgConfig, ConfigFileName) }
func (p *paths) DataDir() string        { return p.xdgData }
func (p *paths) StateDir() string       { return p.xdgState }
func (p *paths) ThemesDir() string      { return filepath.Join(p.xdgConfig, ThemesDirName) }
func (p *paths) LedgerPath() string     { return filepath.Join(p.xdgData, LedgerFileName) }
func (p *paths) LogFilePath() string    { return filepath.Join(p.xdgState, LogFileName) }

// ExpandHome expands a leading ~ or ~/ to the home directory. Paths of the
// form ~user are returned unchanged.
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := GetHomeDirectory()
	if err != nil {
		return path
	}

	if len(path) == 1 {
		return homeDir
	}
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:])
	}
	return path
}

// GetHomeDirectory returns the user's home directory with proper error handling
func GetHomeDirectory() (string, error) {
	if home := os.Getenv(EnvHome); home != "" {
		return home, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrNotFound, "failed to get home directory")
	}
	return homeDir, nil
}
