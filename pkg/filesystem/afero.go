package filesystem

import (
	"io/fs"

	"github.com/arthur-debert/dotprofile/pkg/types"
	"github.com/spf13/afero"
)

// aferoFS is types.FS over any afero backend. Stat, WriteFile, MkdirAll,
// Remove, RemoveAll and Rename come straight from afero.Afero; the methods
// below only exist where dotprofile needs different behavior.
type aferoFS struct {
	afero.Afero
}

// NewAferoFS wraps backend.
func NewAferoFS(backend afero.Fs) types.FS {
	return &aferoFS{Afero: afero.Afero{Fs: backend}}
}

// NewOS is the real filesystem.
func NewOS() types.FS { return NewAferoFS(afero.NewOsFs()) }

// NewMemory is an empty in-memory filesystem for tests.
func NewMemory() types.FS { return NewAferoFS(afero.NewMemMapFs()) }

// Open returns an fs.File so synthfs operations can read through it.
func (a *aferoFS) Open(name string) (fs.File, error) {
	return a.Fs.Open(name)
}

// ReadFile refuses directories on every backend; MemMapFs would otherwise
// return an empty slice.
func (a *aferoFS) ReadFile(name string) ([]byte, error) {
	info, err := a.Fs.Stat(name)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, &fs.PathError{Op: "read", Path: name, Err: fs.ErrInvalid}
	}
	return a.Afero.ReadFile(name)
}

// Lstat does not follow symlinks where the backend has them. MemMapFs has
// none, so Stat answers there.
func (a *aferoFS) Lstat(name string) (fs.FileInfo, error) {
	if l, ok := a.Fs.(afero.Lstater); ok {
		info, _, err := l.LstatIfPossible(name)
		return info, err
	}
	return a.Fs.Stat(name)
}

// ReadDir lists name sorted by entry name.
func (a *aferoFS) ReadDir(name string) ([]fs.DirEntry, error) {
	infos, err := a.Afero.ReadDir(name)
	if err != nil {
		return nil, err
	}
	entries := make([]fs.DirEntry, 0, len(infos))
	for _, info := range infos {
		entries = append(entries, fs.FileInfoToDirEntry(info))
	}
	return entries, nil
}
