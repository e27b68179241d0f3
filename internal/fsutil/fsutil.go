// Package fsutil provides the filesystem primitives of the conversion
// pipeline: directory snapshots, disk usage and backup naming.
package fsutil

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	cp "github.com/otiai10/copy"
)

// CopyDir recursively copies src to dst, preserving permissions.
func CopyDir(src, dst string) error {
	if err := cp.Copy(src, dst); err != nil {
		return fmt.Errorf("copy %s to %s: %w", src, dst, err)
	}
	return nil
}

// DirSize returns the total size in bytes of all regular files under path.
func DirSize(path string) (int64, error) {
	var total int64
	err := filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		total += info.Size()
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("measure %s: %w", path, err)
	}
	return total, nil
}

// BackupName returns a snapshot path adjacent to dir, unique to this
// process. Uniqueness reduces, but does not eliminate, collision risk
// between concurrent runs against the same repository.
func BackupName(dir string) string {
	return fmt.Sprintf("%s.backup.%d", filepath.Clean(dir), os.Getpid())
}

// StaleBackups lists snapshot directories next to dir left behind by
// previous runs. The current process's own backup name is excluded.
func StaleBackups(dir string) []string {
	matches, err := filepath.Glob(filepath.Clean(dir) + ".backup.*")
	if err != nil {
		return nil
	}

	own := BackupName(dir)
	var stale []string
	for _, m := range matches {
		if m != own {
			stale = append(stale, m)
		}
	}
	return stale
}
