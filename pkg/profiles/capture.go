package profiles

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/dotprofile/pkg/errors"
	"github.com/arthur-debert/dotprofile/pkg/filesystem"
	"github.com/arthur-debert/dotprofile/pkg/logging"
	"github.com/arthur-debert/dotprofile/pkg/paths"
	"github.com/arthur-debert/dotprofile/pkg/types"
)

// CaptureOptions describes a new profile built from live files.
type CaptureOptions struct {
	// Root is the profiles root
	Root string
	// Name becomes both the directory name and the profile name
	Name string
	// Home is the directory captured paths must live under
	Home string
	// Paths are files or directories to copy; ~ is expanded against Home
	Paths []string
	// Force allows capturing into an existing profile, replacing files
	Force bool
}

// CapturedFile is one file copied into the profile.
type CapturedFile struct {
	From string
	To   string
}

// CaptureResult lists what was captured.
type CaptureResult struct {
	Descriptor types.ProfileDescriptor
	Files      []CapturedFile
}

// Capture copies the current content of opts.Paths into a profile's home
// tree so applying the profile later restores them. A profile.json is
// written when the profile has no manifest yet.
func Capture(fsys types.FS, opts CaptureOptions) (*CaptureResult, error) {
	logger := logging.GetLogger("profiles.capture")
	logger.Info().Str("profile", opts.Name).Strs("paths", opts.Paths).Msg("capturing profile")

	name := strings.TrimSpace(opts.Name)
	if err := paths.ValidateProfileName(name); err != nil {
		return nil, err
	}
	if len(opts.Paths) == 0 {
		return nil, errors.New(errors.ErrInvalidInput, "nothing to capture")
	}

	dir := filepath.Join(opts.Root, name)
	exists, err := filesystem.Exists(fsys, dir)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrIOFailure, "checking profile directory").WithDetail("path", dir)
	}
	if exists && !opts.Force {
		return nil, errors.Newf(errors.ErrAlreadyExists, "profile %q already exists", name).
			WithDetail("path", dir)
	}

	var files []CapturedFile
	for _, p := range opts.Paths {
		found, err := captureSources(fsys, opts.Home, p)
		if err != nil {
			return nil, err
		}
		for _, f := range found {
			if paths.ContainsPath(opts.Root, f.From) {
				continue
			}
			files = append(files, f)
		}
	}
	if len(files) == 0 {
		return nil, errors.New(errors.ErrInvalidInput, "no regular files found to capture")
	}

	for i := range files {
		rel, _ := filepath.Rel(opts.Home, files[i].From)
		files[i].To = filepath.Join(dir, paths.HomeDirName, rel)
		if err := copyFile(fsys, files[i].From, files[i].To); err != nil {
			return nil, err
		}
		logger.Debug().Str("from", files[i].From).Str("to", files[i].To).Msg("captured")
	}

	if manifestMissing(fsys, dir) {
		data, err := Encode(ManifestNames[0], types.Profile{Name: name})
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrInternal, "encoding manifest")
		}
		if err := filesystem.WriteFileAtomic(fsys, filepath.Join(dir, ManifestNames[0]), data, 0644); err != nil {
			return nil, errors.Wrap(err, errors.ErrIOFailure, "writing manifest").WithDetail("path", dir)
		}
	}

	d, err := Load(fsys, dir)
	if err != nil {
		return nil, err
	}
	logger.Info().Str("profile", d.ID).Int("files", len(files)).Msg("profile captured")
	return &CaptureResult{Descriptor: d, Files: files}, nil
}

func manifestMissing(fsys types.FS, dir string) bool {
	for _, name := range ManifestNames {
		if ok, _ := filesystem.Exists(fsys, filepath.Join(dir, name)); ok {
			return false
		}
	}
	return true
}

// captureSources expands one capture argument into regular files.
func captureSources(fsys types.FS, home, p string) ([]CapturedFile, error) {
	abs := p
	switch {
	case p == "~":
		abs = home
	case strings.HasPrefix(p, "~/"):
		abs = filepath.Join(home, p[2:])
	case !filepath.IsAbs(p):
		abs = filepath.Join(home, p)
	}
	abs = filepath.Clean(abs)

	if abs == filepath.Clean(home) || !paths.ContainsPath(home, abs) {
		return nil, errors.Newf(errors.ErrInvalidInput, "%s is not inside the home directory", p).
			WithDetail("path", p)
	}

	info, err := fsys.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(err, errors.ErrNotFound, "%s does not exist", p).WithDetail("path", p)
		}
		return nil, errors.Wrap(err, errors.ErrIOFailure, "inspecting capture path").WithDetail("path", p)
	}

	if !info.IsDir() {
		return []CapturedFile{{From: abs}}, nil
	}

	var out []CapturedFile
	err = filesystem.WalkFiles(fsys, abs, func(path, _ string, _ os.FileInfo) error {
		out = append(out, CapturedFile{From: path})
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrIOFailure, "walking capture path").WithDetail("path", p)
	}
	return out, nil
}

func copyFile(fsys types.FS, from, to string) error {
	info, err := fsys.Stat(from)
	if err != nil {
		return errors.Wrap(err, errors.ErrIOFailure, "reading captured file").WithDetail("path", from)
	}
	data, err := fsys.ReadFile(from)
	if err != nil {
		return errors.Wrap(err, errors.ErrIOFailure, "reading captured file").WithDetail("path", from)
	}
	if err := fsys.MkdirAll(filepath.Dir(to), 0755); err != nil {
		return errors.Wrap(err, errors.ErrIOFailure, "creating profile directory").WithDetail("path", to)
	}
	if err := filesystem.WriteFileAtomic(fsys, to, data, info.Mode().Perm()); err != nil {
		return errors.Wrap(err, errors.ErrIOFailure, "writing captured file").WithDetail("path", to)
	}
	return nil
}
