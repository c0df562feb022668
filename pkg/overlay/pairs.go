package overlay

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/dotprofile/pkg/errors"
	"github.com/arthur-debert/dotprofile/pkg/filesystem"
	"github.com/arthur-debert/dotprofile/pkg/paths"
	"github.com/arthur-debert/dotprofile/pkg/types"
)

// Origin says where a pair came from.
type Origin string

const (
	OriginHome        Origin = "home"
	OriginReplacement Origin = "replacement"
)

// Pair is one source file and the destination it overlays.
type Pair struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
	Origin      Origin `json:"origin"`
}

// PlanPairs lists the pairs for a profile: every regular file under
// home/ mapped 1:1 below the engine's home directory, followed by the
// explicit replacements in list order.
func (e *Engine) PlanPairs(profileDir string, p types.Profile) ([]Pair, error) {
	var pairs []Pair

	homeRoot := filepath.Join(profileDir, paths.HomeDirName)
	if _, err := e.FS.Stat(homeRoot); err == nil {
		err := filesystem.WalkFiles(e.FS, homeRoot, func(path, rel string, _ os.FileInfo) error {
			pairs = append(pairs, Pair{
				Source:      path,
				Destination: filepath.Join(e.Home, rel),
				Origin:      OriginHome,
			})
			return nil
		})
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrIOFailure, "walking profile home").
				WithDetail("path", homeRoot)
		}
	} else if !os.IsNotExist(err) {
		return nil, errors.Wrap(err, errors.ErrIOFailure, "reading profile home").
			WithDetail("path", homeRoot)
	}

	for _, r := range p.Replacements {
		pairs = append(pairs, Pair{
			Source:      filepath.Join(profileDir, r.Source),
			Destination: e.expand(r.Destination),
			Origin:      OriginReplacement,
		})
	}
	return pairs, nil
}

// expand resolves ~ against the engine's home. Relative destinations are
// returned unchanged; the guard rejects them.
func (e *Engine) expand(dest string) string {
	switch {
	case dest == "~":
		return e.Home
	case strings.HasPrefix(dest, "~/"):
		return filepath.Join(e.Home, dest[2:])
	}
	return dest
}
