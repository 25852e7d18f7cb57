//go:build !windows

package ops

import (
	stderrors "errors"
	"os"
	"syscall"

	"github.com/museboxapp/musebox/internal/errors"
)

// Backup files are opened with O_NOFOLLOW so a symlink swapped in after
// ValidatePath cannot redirect the final path component. ValidatePath
// already pins the directory part (files must sit directly in an allowed
// directory), so the two checks together cover the whole path. O_CLOEXEC
// keeps the descriptor from leaking across exec.

func openFileNoFollow(path string, flag int, perm os.FileMode) (*os.File, error) {
	fd, err := syscall.Open(path, flag|syscall.O_NOFOLLOW|syscall.O_CLOEXEC, uint32(perm))
	if err != nil {
		if stderrors.Is(err, syscall.ELOOP) {
			return nil, errors.NewInvalidRequest("cannot write to symlink")
		}
		return nil, err
	}
	return os.NewFile(uintptr(fd), path), nil
}

func openFileNoFollowRead(path string) (*os.File, error) {
	fd, err := syscall.Open(path, syscall.O_RDONLY|syscall.O_NOFOLLOW|syscall.O_CLOEXEC, 0)
	if err != nil {
		if stderrors.Is(err, syscall.ELOOP) {
			return nil, errors.NewInvalidRequest("cannot read from symlink")
		}
		if stderrors.Is(err, syscall.ENOENT) {
			return nil, errors.NewNotFound("file", path)
		}
		return nil, err
	}
	return os.NewFile(uintptr(fd), path), nil
}
