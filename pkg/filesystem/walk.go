package filesystem

import (
	"io/fs"
	"path/filepath"

	"github.com/arthur-debert/dotprofile/pkg/types"
)

// WalkFunc receives the absolute path and the path relative to the walk root.
type WalkFunc func(path, rel string, info fs.FileInfo) error

// WalkFiles visits every regular file below root in lexical order. Hidden
// files are included; directories are descended into but never reported.
// Symlinks and other special files are skipped, as are in-progress atomic
// writes.
func WalkFiles(fsys types.FS, root string, fn WalkFunc) error {
	return walk(fsys, root, "", fn)
}

func walk(fsys types.FS, dir, relDir string, fn WalkFunc) error {
	entries, err := fsys.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		rel := filepath.Join(relDir, entry.Name())

		if entry.IsDir() {
			if err := walk(fsys, path, rel, fn); err != nil {
				return err
			}
			continue
		}
		if IsTempFile(entry.Name()) {
			continue
		}
		info, err := fsys.Lstat(path)
		if err != nil {
			return err
		}
		if !info.Mode().IsRegular() {
			continue
		}
		if err := fn(path, rel, info); err != nil {
			return err
		}
	}
	return nil
}
