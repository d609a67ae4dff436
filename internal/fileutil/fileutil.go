// Package fileutil provides the filesystem primitives behind the relay
// pipeline: folder provisioning, non-recursive glob scanning, collision-safe
// destination naming, and move/copy transfer operations.
//
// Expected conditions (missing watch folder, exhausted version counter) are
// reported as named sentinel errors so callers can distinguish them from
// genuine I/O failures with errors.Is.
package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrMissingFolder is returned by ScanFolder when the watch folder does not
// exist. It signals a skipped cycle, not a fatal failure: the folder may
// have been removed externally and can reappear before the next scan.
var ErrMissingFolder = errors.New("watch folder does not exist")

// ErrNoAvailableName is returned by AvailableName when every version suffix
// up to the counter limit is already taken in the target folder.
var ErrNoAvailableName = errors.New("no available destination name")

// maxVersion bounds the zero-padded collision counter (001..999).
const maxVersion = 999

// EnsureDir creates the directory at path, including missing parents.
// Calling it on an existing directory is a no-op.
func EnsureDir(path string) error {
	if err := os.MkdirAll(path, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", path, err)
	}
	return nil
}

// ScanFolder lists the files directly inside dir whose names match the glob
// pattern. The scan is non-recursive; subdirectories are ignored. Results
// are sorted so that dispatch order is deterministic. A missing dir yields
// ErrMissingFolder.
func ScanFolder(dir, pattern string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrMissingFolder
		}
		return nil, fmt.Errorf("failed to access folder %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read folder %s: %w", dir, err)
	}

	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		matched, err := filepath.Match(pattern, entry.Name())
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
		}
		if matched {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}

	sort.Strings(files)
	return files, nil
}

// SplitName splits a file name into base name and extension. The extension
// includes the leading dot; a name without a dot has an empty extension.
func SplitName(filename string) (base, ext string) {
	ext = filepath.Ext(filename)
	base = strings.TrimSuffix(filename, ext)
	return base, ext
}

// AvailableName computes a destination path for filename inside dir that
// does not collide with an existing file. The original name is preferred;
// on collision a zero-padded version tag is inserted before the extension
// ("report.pdf" becomes "report.[001].pdf"), counting up until a free name
// is found. The check is not atomic with the subsequent transfer: a
// concurrent writer can claim the name in between, in which case the
// transfer fails and the file is retried on the next cycle.
func AvailableName(dir, filename string) (string, error) {
	candidate := filepath.Join(dir, filename)
	if _, err := os.Stat(candidate); os.IsNotExist(err) {
		return candidate, nil
	}

	base, ext := SplitName(filename)
	for version := 1; version <= maxVersion; version++ {
		versioned := fmt.Sprintf("%s.[%03d]%s", base, version, ext)
		candidate = filepath.Join(dir, versioned)
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("%w for %s in %s", ErrNoAvailableName, filename, dir)
}

// MoveFile relocates src to dst. Rename is attempted first; when src and
// dst are on different filesystems the move falls back to copy-and-remove.
// The source is only removed after the destination write succeeded.
func MoveFile(src, dst string) error {
	err := os.Rename(src, dst)
	if err == nil {
		return nil
	}

	var linkErr *os.LinkError
	if !errors.As(err, &linkErr) {
		return fmt.Errorf("failed to move %s to %s: %w", src, dst, err)
	}

	if err := CopyFile(src, dst); err != nil {
		return err
	}
	if err := os.Remove(src); err != nil {
		return fmt.Errorf("failed to remove %s after copy: %w", src, err)
	}
	return nil
}

// CopyFile copies src to dst, preserving the source's permission bits. A
// partially written destination is removed on failure so no truncated file
// is left behind for the next scan to pick up.
func CopyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", src, err)
	}

	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", src, err)
	}

	if err := os.WriteFile(dst, data, info.Mode().Perm()); err != nil {
		os.Remove(dst)
		return fmt.Errorf("failed to write %s: %w", dst, err)
	}
	return nil
}
