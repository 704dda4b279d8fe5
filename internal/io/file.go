package ioutils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ExpandHome replaces a leading "~" in path with the user's home directory.
//
//	ExpandHome("~/Videos") // "/home/me/Videos"
//	ExpandHome("Videos")   // "Videos"
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") && !strings.HasPrefix(path, `~\`) {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

// EnsureDir creates a directory and all parent directories if they don't exist.
//
// Directories are created with mode 0755 (rwxr-xr-x).
// If the directory already exists, no error is returned.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}

// PrepareOutputDir resolves dir to an absolute path and creates it.
//
// An empty dir means the current working directory, which is returned as
// "" so that subprocesses simply inherit it. An existing path that is not
// a directory is an error.
func PrepareOutputDir(dir string) (string, error) {
	if strings.TrimSpace(dir) == "" {
		return "", nil
	}

	dir, err := ExpandHome(dir)
	if err != nil {
		return "", err
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve output directory %q: %w", dir, err)
	}

	if info, err := os.Stat(abs); err == nil && !info.IsDir() {
		return "", fmt.Errorf("output path %q is not a directory", abs)
	}

	if err := EnsureDir(abs); err != nil {
		return "", fmt.Errorf("failed to create output directory %q: %w", abs, err)
	}
	return abs, nil
}
