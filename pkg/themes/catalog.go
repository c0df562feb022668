package themes

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/dotprofile/pkg/errors"
	"github.com/arthur-debert/dotprofile/pkg/logging"
	"github.com/arthur-debert/dotprofile/pkg/types"
)

// Extensions lists the theme file extensions accepted for each terminal.
var Extensions = map[types.TerminalKind][]string{
	types.TerminalAlacritty:   {".toml", ".yml", ".yaml"},
	types.TerminalTerminalApp: {".terminal"},
	types.TerminalITerm2:      {".itermcolors"},
	types.TerminalKitty:       {".conf"},
	types.TerminalWezTerm:     {".toml"},
}

// Theme is one catalog entry.
type Theme struct {
	Kind types.TerminalKind
	Name string
	Path string
}

// Catalog looks themes up by terminal and name.
type Catalog interface {
	Lookup(kind types.TerminalKind, name string) (Theme, error)
	List(kind types.TerminalKind) ([]Theme, error)
}

// DirCatalog serves themes from a directory tree.
type DirCatalog struct {
	FS   types.FS
	Root string
}

// NewDirCatalog returns a catalog rooted at root.
func NewDirCatalog(fsys types.FS, root string) *DirCatalog {
	return &DirCatalog{FS: fsys, Root: root}
}

// List returns the valid themes for kind sorted by name. Files that fail
// validation are logged and left out.
func (c *DirCatalog) List(kind types.TerminalKind) ([]Theme, error) {
	exts, ok := Extensions[kind]
	if !ok {
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown terminal %q", kind)
	}

	dir := filepath.Join(c.Root, string(kind))
	entries, err := c.FS.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrap(err, errors.ErrIOFailure, "reading theme directory").WithDetail("path", dir)
	}

	logger := logging.GetLogger("themes")
	var out []Theme
	for _, entry := range entries {
		if entry.IsDir() || !hasExt(entry.Name(), exts) {
			continue
		}
		t := Theme{
			Kind: kind,
			Name: strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name())),
			Path: filepath.Join(dir, entry.Name()),
		}
		if err := c.validate(t); err != nil {
			logger.Warn().Err(err).Str("path", t.Path).Msg("skipping invalid theme")
			continue
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name) })
	return out, nil
}

// Lookup finds a theme by name, ignoring case.
func (c *DirCatalog) Lookup(kind types.TerminalKind, name string) (Theme, error) {
	if strings.TrimSpace(name) == "" {
		return Theme{}, errors.New(errors.ErrThemeNotFound, "theme name is empty")
	}
	all, err := c.List(kind)
	if err != nil {
		return Theme{}, err
	}
	for _, t := range all {
		if strings.EqualFold(t.Name, name) {
			return t, nil
		}
	}
	return Theme{}, errors.Newf(errors.ErrThemeNotFound, "no %s theme named %q", kind, name).
		WithDetail("kind", string(kind)).
		WithDetail("theme", name)
}

func (c *DirCatalog) validate(t Theme) error {
	switch strings.ToLower(filepath.Ext(t.Path)) {
	case ".itermcolors", ".terminal":
		data, err := c.FS.ReadFile(t.Path)
		if err != nil {
			return errors.Wrap(err, errors.ErrIOFailure, "reading theme").WithDetail("path", t.Path)
		}
		return ValidatePlist(data)
	}
	return nil
}

func hasExt(name string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}
