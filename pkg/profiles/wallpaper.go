package profiles

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/dotprofile/pkg/types"
)

// ImageExtensions are the file extensions treated as wallpapers.
var ImageExtensions = []string{".png", ".jpg", ".jpeg", ".heic", ".heif", ".gif", ".webp", ".tiff", ".tif", ".bmp"}

var preferredPrefixes = []string{"wallpaper", "background", "bg", "desktop"}

// DetectWallpaper returns the relative name of the wallpaper image at the
// top of dir, or "" if there is none. Names starting with wallpaper,
// background, bg or desktop are preferred; ties resolve alphabetically.
func DetectWallpaper(fsys types.FS, dir string) string {
	entries, err := fsys.ReadDir(dir)
	if err != nil {
		return ""
	}

	var first string
	for _, entry := range entries {
		if entry.IsDir() || !IsImage(entry.Name()) {
			continue
		}
		name := entry.Name()
		if hasPreferredPrefix(name) {
			return name
		}
		if first == "" {
			first = name
		}
	}
	return first
}

// IsImage reports whether name has a known image extension.
func IsImage(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, known := range ImageExtensions {
		if ext == known {
			return true
		}
	}
	return false
}

func hasPreferredPrefix(name string) bool {
	lower := strings.ToLower(name)
	for _, prefix := range preferredPrefixes {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}
