package filesystem

import (
	"bytes"
	"context"
	"errors"
	"io/fs"

	"github.com/arthur-debert/dotprofile/pkg/types"
	"github.com/arthur-debert/synthfs/pkg/synthfs"
)

// Synth exposes fsys through the synthfs filesystem interface so synthfs
// operations run against the same backend as the rest of dotprofile.
// Symlinks are not supported.
func Synth(fsys types.FS) synthfs.FullFileSystem {
	return &synthFS{fs: fsys}
}

type synthFS struct {
	fs types.FS
}

func (s *synthFS) Open(name string) (fs.File, error) {
	if opener, ok := s.fs.(interface {
		Open(name string) (fs.File, error)
	}); ok {
		return opener.Open(name)
	}
	info, err := s.fs.Stat(name)
	if err != nil {
		return nil, err
	}
	data, err := s.fs.ReadFile(name)
	if err != nil {
		return nil, err
	}
	return &bufferFile{Reader: bytes.NewReader(data), info: info}, nil
}

func (s *synthFS) Stat(name string) (fs.FileInfo, error) { return s.fs.Stat(name) }

func (s *synthFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	return s.fs.WriteFile(name, data, perm)
}

func (s *synthFS) MkdirAll(path string, perm fs.FileMode) error { return s.fs.MkdirAll(path, perm) }
func (s *synthFS) Remove(name string) error                     { return s.fs.Remove(name) }
func (s *synthFS) RemoveAll(name string) error                  { return s.fs.RemoveAll(name) }
func (s *synthFS) Rename(oldpath, newpath string) error         { return s.fs.Rename(oldpath, newpath) }

func (s *synthFS) Symlink(_, newname string) error {
	return &fs.PathError{Op: "symlink", Path: newname, Err: errors.ErrUnsupported}
}

func (s *synthFS) Readlink(name string) (string, error) {
	return "", &fs.PathError{Op: "readlink", Path: name, Err: errors.ErrUnsupported}
}

type bufferFile struct {
	*bytes.Reader
	info fs.FileInfo
}

func (f *bufferFile) Stat() (fs.FileInfo, error) { return f.info, nil }
func (f *bufferFile) Close() error               { return nil }

// Run validates and executes ops in order against fsys, stopping at the
// first failure. Each op is validated only after the previous one ran, so
// later ops may depend on files earlier ones create.
func Run(ctx context.Context, fsys types.FS, ops ...synthfs.Operation) error {
	sfs := Synth(fsys)
	for _, op := range ops {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := op.Validate(ctx, sfs); err != nil {
			return synthfs.WrapOperationError(op, "validate", err)
		}
		if err := op.Execute(ctx, sfs); err != nil {
			return synthfs.WrapOperationError(op, "execute", err)
		}
	}
	return nil
}
