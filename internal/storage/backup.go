package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// BackupFile copies the store file at src to dst, replacing any previous
// backup. A missing src is not an error; copied reports whether a copy was made.
func BackupFile(src, dst string) (bool, error) {
	if _, err := os.Stat(src); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat store file: %w", err)
	}
	if err := copyFile(src, dst); err != nil {
		return false, fmt.Errorf("failed to copy store file: %w", err)
	}
	return true, nil
}

func copyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer srcFile.Close()

	info, err := srcFile.Stat()
	if err != nil {
		return err
	}

	dstFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer dstFile.Close()

	if _, err := dstFile.ReadFrom(srcFile); err != nil {
		os.Remove(dst)
		return err
	}
	if err := dstFile.Sync(); err != nil {
		return err
	}

	// Keep the source modification time on the backup.
	return os.Chtimes(dst, info.ModTime(), info.ModTime())
}
