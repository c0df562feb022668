package profiles

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/dotprofile/pkg/errors"
	"github.com/arthur-debert/dotprofile/pkg/logging"
	"github.com/arthur-debert/dotprofile/pkg/types"
)

// Invalid records a directory that was skipped during discovery.
type Invalid struct {
	Dir string
	Err error
}

// Discovery is the result of scanning a profiles root.
type Discovery struct {
	Profiles []types.ProfileDescriptor
	Invalid  []Invalid
}

// Find returns the profile with the given ID.
func (d *Discovery) Find(id string) (types.ProfileDescriptor, bool) {
	for _, p := range d.Profiles {
		if p.ID == id {
			return p, true
		}
	}
	return types.ProfileDescriptor{}, false
}

// Discover loads every profile directly below root. Hidden directories
// are skipped and invalid profiles are reported, not returned. Profiles
// are ordered by Order, then DisplayName, then ID.
func Discover(fsys types.FS, root string) (*Discovery, error) {
	logger := logging.GetLogger("profiles.discovery")
	logger.Trace().Str("root", root).Msg("scanning profiles root")

	info, err := fsys.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(err, errors.ErrNotFound, "profiles root does not exist").
				WithDetail("path", root)
		}
		return nil, errors.Wrap(err, errors.ErrIOFailure, "cannot access profiles root").
			WithDetail("path", root)
	}
	if !info.IsDir() {
		return nil, errors.New(errors.ErrInvalidInput, "profiles root is not a directory").
			WithDetail("path", root)
	}

	entries, err := fsys.ReadDir(root)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrIOFailure, "cannot read profiles root").
			WithDetail("path", root)
	}

	result := &Discovery{}
	for _, entry := range entries {
		name := entry.Name()
		if !entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		dir := filepath.Join(root, name)
		d, err := Load(fsys, dir)
		if err != nil {
			logger.Warn().Err(err).Str("path", dir).Msg("skipping invalid profile")
			result.Invalid = append(result.Invalid, Invalid{Dir: dir, Err: err})
			continue
		}
		result.Profiles = append(result.Profiles, d)
	}

	Sort(result.Profiles)
	logger.Debug().Int("profiles", len(result.Profiles)).Int("invalid", len(result.Invalid)).Msg("profiles discovered")
	return result, nil
}

// Sort orders descriptors for display.
func Sort(ds []types.ProfileDescriptor) {
	sort.SliceStable(ds, func(i, j int) bool {
		a, b := ds[i], ds[j]
		if a.Profile.Order != b.Profile.Order {
			return a.Profile.Order < b.Profile.Order
		}
		if la, lb := strings.ToLower(a.DisplayName), strings.ToLower(b.DisplayName); la != lb {
			return la < lb
		}
		return a.ID < b.ID
	})
}

// Source loads profiles by ID from a root directory.
type Source struct {
	FS   types.FS
	Root string
}

// NewSource returns a Source over root.
func NewSource(fsys types.FS, root string) *Source {
	return &Source{FS: fsys, Root: root}
}

// Load returns the descriptor for profile id.
func (s *Source) Load(id string) (types.ProfileDescriptor, error) {
	if id == "" || strings.ContainsAny(id, `/\`) || id == "." || id == ".." {
		return types.ProfileDescriptor{}, errors.Newf(errors.ErrProfileNotFound, "no profile %q", id).
			WithDetail("profile", id)
	}
	return Load(s.FS, filepath.Join(s.Root, id))
}

// List discovers every profile under the root.
func (s *Source) List() (*Discovery, error) {
	return Discover(s.FS, s.Root)
}
