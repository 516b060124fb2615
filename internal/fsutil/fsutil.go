// Package fsutil holds the file system primitives shared by the migration
// commands: whole-file atomic replacement and timestamped backups.
package fsutil

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alexsab-ru/sitekit/pkg/constants"
	"github.com/alexsab-ru/sitekit/pkg/errors"
)

// WriteFile replaces path with data. The content is written to a temporary
// file in the same directory and renamed over the target, so readers see
// either the old or the new file.
func WriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
		return errors.WrapIO("create", dir, err)
	}

	tempFile, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.WrapIO("create", "temp file", err)
	}
	tempPath := tempFile.Name()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		_ = os.Remove(tempPath)
		return errors.WrapIO("write", path, err)
	}
	if err := tempFile.Close(); err != nil {
		_ = os.Remove(tempPath)
		return errors.WrapIO("write", path, err)
	}
	if err := os.Chmod(tempPath, constants.FilePermissions); err != nil {
		_ = os.Remove(tempPath)
		return errors.WrapIO("write", path, err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		_ = os.Remove(tempPath)
		return errors.WrapIO("move", path, err)
	}
	return nil
}

// BackupName returns "<base>.backup-YYYYmmdd-HHMMSS<ext>" for path.
func BackupName(path string, now time.Time) string {
	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	return base + ".backup-" + now.Format(constants.TimeFormatBackup) + ext
}

// Backup copies path next to itself under BackupName and returns the copy's path.
func Backup(path string, now time.Time) (string, error) {
	src, err := os.Open(path)
	if err != nil {
		return "", errors.WrapIO("read", path, err)
	}
	defer func() { _ = src.Close() }()

	target := BackupName(path, now)
	dst, err := os.OpenFile(target, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, constants.FilePermissions)
	if err != nil {
		return "", errors.WrapIO("backup", target, err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		return "", errors.WrapIO("backup", target, err)
	}
	if err := dst.Close(); err != nil {
		return "", errors.WrapIO("backup", target, err)
	}
	return target, nil
}

// Exists reports whether path exists.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// IsDir reports whether path exists and is a directory.
func IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
