// Package atomicfile provides crash-safe file and directory replacement.
//
// Documents become visible only on a completed rename, so a reader never
// observes a truncated tail: the destination is either the previous
// content or the new content.
package atomicfile

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/raceprep/raceprep/internal/errors"
)

// WriteFile writes data to a sibling temporary file and renames it into
// place. The temporary file lives in the destination directory so the
// rename stays on one filesystem.
func WriteFile(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return errors.Wrap(err, "create temporary file", slog.String("path", path))
	}
	tmpName := tmp.Name()
	defer func() {
		// Best-effort cleanup on any failure path; after a successful
		// rename the file no longer exists under this name.
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return errors.Wrap(err, "write temporary file", slog.String("path", path))
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return errors.Wrap(err, "sync temporary file", slog.String("path", path))
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "close temporary file", slog.String("path", path))
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		return errors.Wrap(err, "chmod temporary file", slog.String("path", path))
	}
	if err := os.Rename(tmpName, path); err != nil {
		return errors.Wrap(err, "rename into place", slog.String("path", path))
	}
	return nil
}

// ReplaceDir atomically replaces dst with the contents of src. src must
// be on the same filesystem as dst (sibling temp directories qualify).
// The dance is: move dst aside to a backup, move src into place, delete
// the backup. Any failure restores the backup.
func ReplaceDir(src, dst string) error {
	backup := dst + ".bak"
	// A stale backup from a previous crash blocks the rename; clear it.
	if err := os.RemoveAll(backup); err != nil {
		return errors.Wrap(err, "remove stale backup", slog.String("dir", backup))
	}

	dstExists := true
	if _, err := os.Stat(dst); err != nil {
		if !os.IsNotExist(err) {
			return errors.Wrap(err, "stat destination", slog.String("dir", dst))
		}
		dstExists = false
	}

	if dstExists {
		if err := os.Rename(dst, backup); err != nil {
			return errors.Wrap(err, "move destination to backup", slog.String("dir", dst))
		}
	}
	if err := os.Rename(src, dst); err != nil {
		if dstExists {
			_ = os.Rename(backup, dst)
		}
		return errors.Wrap(err, "move source into place",
			slog.String("src", src), slog.String("dst", dst))
	}
	if dstExists {
		if err := os.RemoveAll(backup); err != nil {
			return errors.Wrap(err, "remove backup", slog.String("dir", backup))
		}
	}
	return nil
}
