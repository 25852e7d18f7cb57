//go:build windows

package ops

import (
	"os"

	"github.com/museboxapp/musebox/internal/errors"
)

// Windows has no O_NOFOLLOW; symlink files are rejected earlier by
// ValidatePath's Lstat check, and creating symlinks there needs elevated
// privileges in the first place.

func openFileNoFollow(path string, flag int, perm os.FileMode) (*os.File, error) {
	return os.OpenFile(path, flag, perm)
}

func openFileNoFollowRead(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFound("file", path)
		}
		return nil, err
	}
	return f, nil
}
