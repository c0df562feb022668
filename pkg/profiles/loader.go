package profiles

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/dotprofile/pkg/errors"
	"github.com/arthur-debert/dotprofile/pkg/hotkey"
	"github.com/arthur-debert/dotprofile/pkg/logging"
	"github.com/arthur-debert/dotprofile/pkg/paths"
	"github.com/arthur-debert/dotprofile/pkg/types"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ManifestNames are tried in this order; the first one present wins.
var ManifestNames = []string{"profile.json", "profile.yml", "profile.yaml", "profile.toml"}

// Load reads and validates the profile in dir.
func Load(fsys types.FS, dir string) (types.ProfileDescriptor, error) {
	logger := logging.GetLogger("profiles.loader").With().Str("path", dir).Logger()

	info, err := fsys.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return types.ProfileDescriptor{}, errors.Wrap(err, errors.ErrProfileNotFound, "profile directory does not exist").
				WithDetail("path", dir)
		}
		return types.ProfileDescriptor{}, errors.Wrap(err, errors.ErrIOFailure, "cannot access profile directory").
			WithDetail("path", dir)
	}
	if !info.IsDir() {
		return types.ProfileDescriptor{}, errors.New(errors.ErrProfileInvalid, "profile path is not a directory").
			WithDetail("path", dir)
	}

	p, manifest, err := readManifest(fsys, dir)
	if err != nil {
		return types.ProfileDescriptor{}, err
	}

	if err := normalize(fsys, dir, &p); err != nil {
		return types.ProfileDescriptor{}, errors.Wrap(err, errors.ErrProfileInvalid, "invalid profile").
			WithDetail("path", dir).
			WithDetail("manifest", manifest)
	}

	d := types.NewDescriptor(dir, p)
	logger.Trace().Str("profile", d.ID).Str("manifest", manifest).Msg("profile loaded")
	return d, nil
}

// readManifest decodes the first manifest found. No manifest yields the
// zero Profile.
func readManifest(fsys types.FS, dir string) (types.Profile, string, error) {
	var p types.Profile
	for _, name := range ManifestNames {
		path := filepath.Join(dir, name)
		data, err := fsys.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return p, name, errors.Wrap(err, errors.ErrIOFailure, "reading profile manifest").
				WithDetail("path", path)
		}
		if err := Decode(name, data, &p); err != nil {
			return p, name, errors.Wrap(err, errors.ErrProfileInvalid, "parsing profile manifest").
				WithDetail("path", path)
		}
		return p, name, nil
	}
	return p, "", nil
}

// Decode parses manifest data according to the manifest file name.
func Decode(name string, data []byte, p *types.Profile) error {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		if len(bytes.TrimSpace(data)) == 0 {
			return nil
		}
		return json.Unmarshal(data, p)
	case ".yml", ".yaml":
		return yaml.Unmarshal(data, p)
	case ".toml":
		return toml.Unmarshal(data, p)
	}
	return errors.Newf(errors.ErrInvalidInput, "unsupported manifest format %q", name)
}

// Encode serializes p in the format implied by name.
func Encode(name string, p types.Profile) ([]byte, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		data, err := json.MarshalIndent(p, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case ".yml", ".yaml":
		return yaml.Marshal(p)
	case ".toml":
		return toml.Marshal(p)
	}
	return nil, errors.Newf(errors.ErrInvalidInput, "unsupported manifest format %q", name)
}

// normalize validates p in place. An invalid hotkey is dropped with a
// warning rather than failing the profile.
func normalize(fsys types.FS, dir string, p *types.Profile) error {
	p.Name = strings.TrimSpace(p.Name)
	name := p.Name
	if name == "" {
		name = filepath.Base(dir)
	}
	if err := paths.ValidateProfileName(name); err != nil {
		return err
	}

	if p.Hotkey != "" {
		canonical, err := hotkey.Canonical(p.Hotkey)
		if err != nil {
			logger := logging.GetLogger("profiles.loader")
			logger.Warn().Err(err).Str("path", dir).Msg("ignoring invalid hotkey")
			p.Hotkey = ""
		} else {
			p.Hotkey = canonical
		}
	}

	if p.Terminal != nil && !p.Terminal.Kind.Valid() {
		return errors.Newf(errors.ErrInvalidInput, "unknown terminal %q", p.Terminal.Kind).
			WithDetail("field", "terminal.kind")
	}
	if p.IDE != nil && !p.IDE.Kind.Valid() {
		return errors.Newf(errors.ErrInvalidInput, "unknown ide %q", p.IDE.Kind).
			WithDetail("field", "ide.kind")
	}
	if !p.SystemTheme.Valid() {
		return errors.Newf(errors.ErrInvalidInput, "unknown systemTheme %q", p.SystemTheme).
			WithDetail("field", "systemTheme")
	}

	if p.Wallpaper != "" {
		if err := paths.ValidateRelativePath(p.Wallpaper); err != nil {
			return errors.Wrap(err, errors.ErrInvalidInput, "invalid wallpaper path").WithDetail("field", "wallpaper")
		}
	} else {
		p.Wallpaper = DetectWallpaper(fsys, dir)
	}

	if p.StartupScript != "" {
		if err := paths.ValidateRelativePath(p.StartupScript); err != nil {
			return errors.Wrap(err, errors.ErrInvalidInput, "invalid startup script path").WithDetail("field", "startupScript")
		}
	}

	for i, r := range p.Replacements {
		if err := paths.ValidateRelativePath(r.Source); err != nil {
			return errors.Wrapf(err, errors.ErrInvalidInput, "replacement %d has an invalid source", i).
				WithDetail("field", "replacements")
		}
		if strings.TrimSpace(r.Destination) == "" {
			return errors.Newf(errors.ErrInvalidInput, "replacement %d has no destination", i).
				WithDetail("field", "replacements")
		}
	}
	return nil
}
