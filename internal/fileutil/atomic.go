// Package fileutil replaces files without exposing partial writes.
package fileutil

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// WriteAtomic streams the output of fill into a temporary file next to
// filename and renames it into place once fill returns nil. Readers see the
// previous file or the complete new one, never a partial write. If fill fails
// the existing file is untouched.
func WriteAtomic(filename string, perm os.FileMode, fill func(w io.Writer) error) (err error) {
	// Rename is only atomic within a filesystem.
	tmp, err := os.CreateTemp(filepath.Dir(filename), filepath.Base(filename)+".tmp.*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	if err = fill(tmp); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("sync %s: %w", tmpPath, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmpPath, err)
	}
	if err = os.Chmod(tmpPath, perm); err != nil {
		return fmt.Errorf("chmod %s: %w", tmpPath, err)
	}
	if err = os.Rename(tmpPath, filename); err != nil {
		return fmt.Errorf("rename into %s: %w", filename, err)
	}
	return nil
}

// WriteFileAtomic is WriteAtomic for data already in memory.
func WriteFileAtomic(filename string, data []byte, perm os.FileMode) error {
	return WriteAtomic(filename, perm, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}
