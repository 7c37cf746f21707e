package platform

import (
	"fmt"
	"os"
	"path/filepath"
)

// File permissions
const (
	DefaultDirPermissions = 0755
)

// CreateDirectoryIfNotExists creates directory if it doesn't exist
func CreateDirectoryIfNotExists(dirPath string) error {
	if _, err := os.Stat(dirPath); os.IsNotExist(err) {
		return os.MkdirAll(dirPath, DefaultDirPermissions)
	}
	return nil
}

// RenameIfAbsent renames src to dst unless dst already exists. When dst
// exists the existing file wins: src is removed and dst is returned, so
// repeated downloads of the same title never clobber an earlier result.
func RenameIfAbsent(src, dst string) (string, error) {
	if src == dst {
		return dst, nil
	}
	if _, err := os.Stat(dst); err == nil {
		if err := os.Remove(src); err != nil {
			return "", fmt.Errorf("remove duplicate %s: %w", src, err)
		}
		return dst, nil
	}
	if err := os.Rename(src, dst); err != nil {
		return "", fmt.Errorf("rename %s to %s: %w", src, dst, err)
	}
	return dst, nil
}

// MoveFile renames src into dstDir, creating the directory as needed.
// Falls back to the duplicate-safe rename semantics of RenameIfAbsent.
func MoveFile(src, dstDir string) (string, error) {
	if err := CreateDirectoryIfNotExists(dstDir); err != nil {
		return "", fmt.Errorf("ensure directory %s: %w", dstDir, err)
	}
	dst := filepath.Join(dstDir, filepath.Base(src))
	return RenameIfAbsent(src, dst)
}

// GetHomeMusicDir returns the default music directory under the user home
func GetHomeMusicDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, "Music"), nil
}
