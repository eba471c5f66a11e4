package db

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// BackupTimeLayout is the timestamp embedded in backup file names.
const BackupTimeLayout = "20060102_150405"

// BackupName returns the backup file name for the store at path:
// {store_name}_{yyyyMMdd_HHmmss}.{ext}
func BackupName(path string, at time.Time) string {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	name := strings.TrimSuffix(base, ext)
	return fmt.Sprintf("%s_%s%s", name, at.Format(BackupTimeLayout), ext)
}

// Backup copies the store file at path into dir and returns the copy's path.
// Backups are never pruned or overwritten: when the name for at is already
// taken a counter is appended, as in hotel_20240305_070809_2.db.
func Backup(path, dir string, at time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	name := BackupName(path, at)
	ext := filepath.Ext(name)
	for n := 1; ; n++ {
		candidate := name
		if n > 1 {
			candidate = fmt.Sprintf("%s_%d%s", strings.TrimSuffix(name, ext), n, ext)
		}
		dest := filepath.Join(dir, candidate)

		err := copyFile(path, dest)
		if err == nil {
			return dest, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return "", fmt.Errorf("failed to back up %s: %w", path, err)
		}
	}
}

// copyFile copies src to dest, which must not exist yet.
func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dest)
		return err
	}
	if err := out.Sync(); err != nil {
		out.Close()
		os.Remove(dest)
		return err
	}
	if err := out.Close(); err != nil {
		os.Remove(dest)
		return err
	}
	return os.Chtimes(dest, info.ModTime(), info.ModTime())
}
