// Package fileutils holds the file system helpers used by the batch processor:
// input discovery, output naming and output file creation.
package fileutils

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DirPermission is applied to directories created by EnsureDirectoryExists.
const DirPermission = 0750

// DirectoryExists reports whether path exists and is a directory.
func DirectoryExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// EnsureDirectoryExists creates dir and any missing parents.
func EnsureDirectoryExists(dir string) error {
	if err := os.MkdirAll(dir, DirPermission); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

// CreateFile opens path for writing, truncating an existing file. Missing parent
// directories are created first.
func CreateFile(path string, perm os.FileMode) (*os.File, error) {
	if err := EnsureDirectoryExists(filepath.Dir(path)); err != nil {
		return nil, err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm) // #nosec G304 -- path supplied by the operator
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	return f, nil
}

// ListFilesWithExtensions returns the regular files directly inside dir whose
// extension matches one of extensions, case-insensitively, sorted by path.
// Subdirectories are not scanned.
func ListFilesWithExtensions(dir string, extensions ...string) ([]string, error) {
	if !DirectoryExists(dir) {
		return nil, fmt.Errorf("directory does not exist: %s", dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}

	var files []string
	for _, e := range entries {
		if e.Type().IsRegular() && HasExtension(e.Name(), extensions...) {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

// HasExtension reports whether name ends with one of extensions, ignoring case.
func HasExtension(name string, extensions ...string) bool {
	ext := filepath.Ext(name)
	for _, e := range extensions {
		if strings.EqualFold(ext, e) {
			return true
		}
	}
	return false
}

// OutputPath names the message written for inputPath: its base name with the
// last extension replaced by suffix, inside outputDir.
func OutputPath(inputPath, outputDir, suffix string) string {
	base := filepath.Base(inputPath)
	return filepath.Join(outputDir, strings.TrimSuffix(base, filepath.Ext(base))+suffix)
}
