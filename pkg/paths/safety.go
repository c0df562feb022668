package paths

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/dotprofile/pkg/errors"
)

// systemRoots are never written to, unless a path also falls inside the
// home or temp trees.
var systemRoots = []string{
	"/bin",
	"/sbin",
	"/usr",
	"/etc",
	"/lib",
	"/lib32",
	"/lib64",
	"/libx32",
	"/boot",
	"/dev",
	"/proc",
	"/sys",
	"/var",
	"/private",
	"/System",
	"/Library",
	"/Applications",
	"/opt/homebrew",
}

// tempRoots are accepted in addition to os.TempDir().
var tempRoots = []string{
	"/tmp",
	"/private/tmp",
	"/var/tmp",
	"/private/var/tmp",
	"/var/folders",
	"/private/var/folders",
}

// Guard decides whether a destination may be written.
//
// Resolution order for a cleaned absolute path:
//  1. explicitly protected paths are rejected
//  2. the home tree and temp trees are accepted
//  3. system roots are rejected
//  4. anything else is accepted
//
// When the parent directory goes through a symlink, the resolved path must
// pass as well.
type Guard struct {
	home      string
	temp      []string
	protected []string
	denied    []string
	resolve   func(string) string
}

// NewGuard creates a Guard for the given home directory. Extra protected
// entries may be absolute, ~-prefixed or relative to home.
func NewGuard(home string, protected ...string) *Guard {
	g := &Guard{
		denied:  systemRoots,
		resolve: resolveParent,
	}
	if home != "" && filepath.Clean(home) != string(filepath.Separator) {
		g.home = filepath.Clean(home)
	}

	g.temp = append(g.temp, tempRoots...)
	if tmp := os.TempDir(); tmp != "" {
		g.temp = append(g.temp, filepath.Clean(tmp))
	}

	for _, p := range protected {
		if p == "" {
			continue
		}
		p = ExpandHome(p)
		if !filepath.IsAbs(p) && g.home != "" {
			p = filepath.Join(g.home, p)
		}
		g.protected = append(g.protected, filepath.Clean(p))
		if resolved, err := filepath.EvalSymlinks(p); err == nil && resolved != filepath.Clean(p) {
			g.protected = append(g.protected, resolved)
		}
	}
	return g
}

// IsSafeWritePath reports whether path may be written.
func (g *Guard) IsSafeWritePath(path string) bool {
	return g.Check(path) == nil
}

// Check returns a PATH_UNSAFE error when path may not be written.
func (g *Guard) Check(path string) error {
	if err := ValidatePath(path); err != nil {
		return errors.Wrap(err, errors.ErrPathUnsafe, "invalid destination path").
			WithDetail("destination", path)
	}
	if !filepath.IsAbs(path) {
		return errors.New(errors.ErrPathUnsafe, "destination must be absolute").
			WithDetail("destination", path)
	}

	cleaned := filepath.Clean(path)
	candidates := []string{cleaned}
	if g.resolve != nil {
		if resolved := g.resolve(cleaned); resolved != "" && resolved != cleaned {
			candidates = append(candidates, resolved)
		}
	}

	for _, candidate := range candidates {
		if reason := g.verdict(candidate); reason != "" {
			return errors.Newf(errors.ErrPathUnsafe, "refusing to write %s: %s", path, reason).
				WithDetail("destination", path).
				WithDetail("resolved", candidate)
		}
	}
	return nil
}

// verdict returns "" when p is writable, otherwise the reason it is not.
func (g *Guard) verdict(p string) string {
	if p == string(filepath.Separator) {
		return "filesystem root"
	}
	for _, root := range g.protected {
		if ContainsPath(root, p) {
			return "protected path " + root
		}
	}
	if g.home != "" && ContainsPath(g.home, p) {
		return ""
	}
	for _, root := range g.temp {
		if ContainsPath(root, p) {
			return ""
		}
	}
	for _, root := range g.denied {
		if ContainsPath(root, p) {
			return "system directory " + root
		}
	}
	return ""
}

// resolveParent evaluates symlinks on the deepest existing ancestor of
// path's parent directory and re-attaches the remaining components. The
// final component is left alone: overlay writes replace it by rename.
func resolveParent(path string) string {
	dir := filepath.Dir(path)
	var rest []string
	for {
		if resolved, err := filepath.EvalSymlinks(dir); err == nil {
			parts := append([]string{resolved}, reverse(rest)...)
			parts = append(parts, filepath.Base(path))
			return filepath.Join(parts...)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return path
		}
		rest = append(rest, filepath.Base(dir))
		dir = parent
	}
}

func reverse(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[len(in)-1-i] = s
	}
	return out
}

// WithResolver replaces the symlink resolver. A nil resolver disables
// resolution, which in-memory filesystems need since their paths do not
// exist on disk.
func (g *Guard) WithResolver(resolve func(string) string) *Guard {
	g.resolve = resolve
	return g
}
