// Package safeio confines file access to an expected directory root, so a
// crafted path in arguments or config cannot read or clobber files outside
// the workspace.
package safeio

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ReadFileUnder reads targetPath only if it resolves under rootDir.
func ReadFileUnder(rootDir, targetPath string) ([]byte, error) {
	rootAbs, rel, err := relativeUnder(rootDir, targetPath)
	if err != nil {
		return nil, err
	}

	root, err := os.OpenRoot(rootAbs)
	if err != nil {
		return nil, fmt.Errorf("open root: %w", err)
	}
	defer root.Close()

	file, err := root.Open(rel)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return io.ReadAll(file)
}

// ReadFile reads the exact targetPath by opening its parent directory as a
// root.
func ReadFile(targetPath string) ([]byte, error) {
	targetAbs, err := filepath.Abs(targetPath)
	if err != nil {
		return nil, fmt.Errorf("resolve target path: %w", err)
	}

	root, err := os.OpenRoot(filepath.Dir(targetAbs))
	if err != nil {
		return nil, fmt.Errorf("open parent root: %w", err)
	}
	defer root.Close()

	file, err := root.Open(filepath.Base(targetAbs))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return io.ReadAll(file)
}

// WriteFileUnder replaces targetPath's content only if it resolves under
// rootDir, preserving the file's existing permission bits.
func WriteFileUnder(rootDir, targetPath string, data []byte) error {
	rootAbs, rel, err := relativeUnder(rootDir, targetPath)
	if err != nil {
		return err
	}

	root, err := os.OpenRoot(rootAbs)
	if err != nil {
		return fmt.Errorf("open root: %w", err)
	}
	defer root.Close()

	mode := os.FileMode(0o644)
	if info, statErr := root.Stat(rel); statErr == nil {
		mode = info.Mode().Perm()
	}

	file, err := root.OpenFile(rel, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	if _, err := file.Write(data); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func relativeUnder(rootDir, targetPath string) (rootAbs, rel string, err error) {
	rootAbs, err = filepath.Abs(rootDir)
	if err != nil {
		return "", "", fmt.Errorf("resolve root path: %w", err)
	}
	targetAbs, err := filepath.Abs(targetPath)
	if err != nil {
		return "", "", fmt.Errorf("resolve target path: %w", err)
	}

	rel, err = filepath.Rel(rootAbs, targetAbs)
	if err != nil {
		return "", "", fmt.Errorf("compute relative path: %w", err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(os.PathSeparator)) {
		return "", "", fmt.Errorf("path escapes root: %s", targetPath)
	}
	return rootAbs, filepath.Clean(rel), nil
}
