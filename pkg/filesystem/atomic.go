package filesystem

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/arthur-debert/dotprofile/pkg/types"
	"github.com/arthur-debert/synthfs/pkg/synthfs"
	"github.com/google/uuid"
)

// tempPrefix marks in-progress writes; Walk skips files carrying it.
const tempPrefix = ".dotprofile-tmp-"

// WriteFileAtomic writes data to a temporary sibling of name and renames it
// into place, so readers see either the old content or the new content.
func WriteFileAtomic(fsys types.FS, name string, data []byte, perm fs.FileMode) error {
	tmp := tempSibling(name)
	sfs := synthfs.New()
	if err := Run(context.Background(), fsys, sfs.CreateFile(tmp, data, perm), sfs.Move(tmp, name)); err != nil {
		_ = fsys.Remove(tmp)
		return err
	}
	return nil
}

// CopyFile copies src over dst with the same atomicity as WriteFileAtomic.
// dst keeps src's permissions.
func CopyFile(ctx context.Context, fsys types.FS, src, dst string) error {
	tmp := tempSibling(dst)
	sfs := synthfs.New()
	if err := Run(ctx, fsys, sfs.Copy(src, tmp), sfs.Move(tmp, dst)); err != nil {
		_ = fsys.Remove(tmp)
		return err
	}
	return nil
}

func tempSibling(name string) string {
	return filepath.Join(filepath.Dir(name), tempPrefix+filepath.Base(name)+"-"+uuid.NewString())
}

// Exists reports whether name exists. Errors other than not-exist are
// returned so callers do not mistake a permission problem for absence.
func Exists(fsys types.FS, name string) (bool, error) {
	_, err := fsys.Lstat(name)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// IsTempFile reports whether base is an in-progress atomic write.
func IsTempFile(base string) bool {
	return len(base) >= len(tempPrefix) && base[:len(tempPrefix)] == tempPrefix
}
