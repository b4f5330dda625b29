package workspace

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

const maxScanFiles = 4096

var fixedGitPaths = []string{
	"/usr/bin/git",
	"/bin/git",
}

func NormalizeRepoPath(path string) (string, error) {
	if path == "" {
		path = "."
	}
	return filepath.Abs(path)
}

// DiscoverSources walks root for C# source files in walk order, skipping
// build output, VCS metadata, and generated sources. The walk stops after
// maxScanFiles files so a pathological tree cannot hang a run.
func DiscoverSources(ctx context.Context, root string) ([]string, error) {
	normalized, err := NormalizeRepoPath(root)
	if err != nil {
		return nil, err
	}

	sources := make([]string, 0)
	visited := 0
	err = filepath.WalkDir(normalized, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx != nil && ctx.Err() != nil {
			return ctx.Err()
		}
		if entry.IsDir() {
			if shouldSkipDir(entry.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		visited++
		if visited > maxScanFiles {
			return fs.SkipAll
		}
		if IsSourceFile(path) && !IsGeneratedSource(path) {
			sources = append(sources, path)
		}
		return nil
	})
	if err != nil && err != fs.SkipAll {
		return nil, err
	}
	return sources, nil
}

func IsSourceFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".cs")
}

// IsGeneratedSource recognizes tool-emitted C# files, which an organizer
// must leave alone.
func IsGeneratedSource(path string) bool {
	lower := strings.ToLower(filepath.Base(path))
	switch {
	case strings.HasSuffix(lower, ".g.cs"),
		strings.HasSuffix(lower, ".g.i.cs"),
		strings.HasSuffix(lower, ".designer.cs"),
		strings.HasSuffix(lower, ".assemblyinfo.cs"):
		return true
	default:
		return false
	}
}

func shouldSkipDir(name string) bool {
	switch strings.ToLower(name) {
	case ".git", ".idea", ".vscode", "node_modules", "vendor", "bin", "obj", "dist", "build", "packages":
		return true
	default:
		return false
	}
}

// CurrentCommitSHA resolves HEAD for report metadata. Only fixed system git
// paths are consulted.
func CurrentCommitSHA(repoPath string) (string, error) {
	normalized, err := NormalizeRepoPath(repoPath)
	if err != nil {
		return "", err
	}
	gitPath, err := resolveGitBinaryPath()
	if err != nil {
		return "", err
	}
	// #nosec G204 -- arguments are fixed and repoPath is normalized to an absolute directory.
	cmd := exec.Command(gitPath, "-C", normalized, "rev-parse", "--verify", "HEAD")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("resolve git commit sha: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return strings.TrimSpace(string(output)), nil
}

func resolveGitBinaryPath() (string, error) {
	for _, candidate := range fixedGitPaths {
		info, err := os.Stat(candidate)
		if err != nil {
			continue
		}
		if info.IsDir() {
			continue
		}
		if info.Mode()&0o111 == 0 {
			continue
		}
		return candidate, nil
	}
	return "", fmt.Errorf("git binary not found in fixed system paths")
}
