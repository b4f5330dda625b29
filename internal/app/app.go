package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/codetidy/usort/internal/diag"
	"github.com/codetidy/usort/internal/organize"
	"github.com/codetidy/usort/internal/report"
	"github.com/codetidy/usort/internal/safeio"
	"github.com/codetidy/usort/internal/watch"
	"github.com/codetidy/usort/internal/workspace"
)

var (
	ErrUnknownMode = errors.New("unknown mode")
	// ErrCheckFailed marks a check run that found files needing changes; the
	// CLI maps it to its own exit code so CI can gate on it.
	ErrCheckFailed = errors.New("files need organizing")
)

const stdinPath = "-"

type App struct {
	Formatter report.Formatter
	Out       io.Writer
	In        io.Reader
}

func New(out io.Writer, in io.Reader) *App {
	return &App{
		Formatter: report.NewFormatter(),
		Out:       out,
		In:        in,
	}
}

func (a *App) Execute(ctx context.Context, req Request) (string, error) {
	switch req.Mode {
	case ModeOrganize:
		return a.executeOrganize(ctx, req, false)
	case ModeCheck:
		return a.executeOrganize(ctx, req, true)
	case ModeWatch:
		return "", a.executeWatch(ctx, req)
	default:
		return "", ErrUnknownMode
	}
}

func (a *App) executeOrganize(ctx context.Context, req Request, checkOnly bool) (string, error) {
	if isStdinRequest(req.Organize.Paths) {
		return a.organizeStdin(req)
	}

	repoPath, err := workspace.NormalizeRepoPath(req.RepoPath)
	if err != nil {
		return "", err
	}

	runReport := report.New(repoPath, checkOnly)
	if sha, shaErr := workspace.CurrentCommitSHA(repoPath); shaErr == nil {
		runReport.CommitSHA = sha
	}

	snapshot := a.loadSnapshot(req.Organize.DiagnosticsPath, &runReport)

	paths := req.Organize.Paths
	if len(paths) == 0 {
		paths, err = workspace.DiscoverSources(ctx, repoPath)
		if err != nil {
			return "", err
		}
	}

	for _, path := range paths {
		if ctx != nil && ctx.Err() != nil {
			return "", ctx.Err()
		}
		runReport.Add(a.processFile(path, repoPath, snapshot, req, checkOnly))
	}

	output, err := a.Formatter.Format(runReport, req.Organize.Format)
	if err != nil {
		return "", err
	}
	if checkOnly && (runReport.Summary.Changed > 0 || runReport.Summary.Failed > 0) {
		return output, ErrCheckFailed
	}
	return output, nil
}

func (a *App) processFile(path, repoPath string, snapshot diag.Snapshot, req Request, checkOnly bool) report.FileResult {
	data, err := safeio.ReadFile(path)
	if err != nil {
		return report.FileResult{
			Path:    path,
			Status:  organize.StatusFailed.String(),
			Message: fmt.Sprintf("read: %v", err),
		}
	}

	result := organize.Organize(organize.Document{
		Text:        string(data),
		Diagnostics: diagnosticsForFile(snapshot, repoPath, path),
	}, req.Organize.Options)

	fileResult := report.FileResult{
		Path:    path,
		Status:  result.Status.String(),
		Removed: result.Removed,
		Message: result.Message,
	}

	if result.Status == organize.StatusChanged && !checkOnly && req.Organize.Write {
		if err := safeio.WriteFileUnder(filepath.Dir(path), path, []byte(result.Content)); err != nil {
			fileResult.Status = organize.StatusFailed.String()
			fileResult.Message = fmt.Sprintf("write: %v", err)
		}
	}
	return fileResult
}

// organizeStdin runs one document through the pipeline and prints the result,
// organized or not, so the caller can pipe unconditionally.
func (a *App) organizeStdin(req Request) (string, error) {
	data, err := io.ReadAll(a.In)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}

	snapshot := diag.Empty()
	if req.Organize.DiagnosticsPath != "" {
		if loaded, loadErr := diag.Load(req.Organize.DiagnosticsPath); loadErr == nil {
			snapshot = loaded
		}
	}

	result := organize.Organize(organize.Document{
		Text:        string(data),
		Diagnostics: snapshot.ForFile(stdinPath),
	}, req.Organize.Options)
	if result.Status == organize.StatusFailed {
		return "", errors.New(result.Message)
	}
	return result.Content, nil
}

func (a *App) executeWatch(ctx context.Context, req Request) error {
	repoPath, err := workspace.NormalizeRepoPath(req.RepoPath)
	if err != nil {
		return err
	}

	watcher, err := watch.New([]string{repoPath}, req.Organize.Debounce)
	if err != nil {
		return err
	}

	organizeReq := req
	organizeReq.Organize.Write = true

	err = watcher.Run(ctx, func(paths []string) {
		snapshot := a.loadSnapshot(req.Organize.DiagnosticsPath, nil)
		for _, path := range paths {
			result := a.processFile(path, repoPath, snapshot, organizeReq, false)
			fmt.Fprintf(a.Out, "%s: %s\n", path, result.Status)
		}
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// loadSnapshot degrades to an empty snapshot on any load failure: a missing
// or malformed diagnostics file means nothing is confirmed unused, never a
// run abort.
func (a *App) loadSnapshot(path string, runReport *report.Report) diag.Snapshot {
	if path == "" {
		return diag.Empty()
	}
	snapshot, err := diag.Load(path)
	if err != nil {
		if runReport != nil {
			runReport.AddWarning(fmt.Sprintf("diagnostics ignored: %v", err))
		}
		return diag.Empty()
	}
	return snapshot
}

// diagnosticsForFile looks a file up in the snapshot under the paths an
// analyzer plausibly recorded: repo-relative first, then absolute.
func diagnosticsForFile(snapshot diag.Snapshot, repoPath, path string) []diag.Diagnostic {
	if rel, err := filepath.Rel(repoPath, path); err == nil {
		if diagnostics := snapshot.ForFile(rel); len(diagnostics) > 0 {
			return diagnostics
		}
	}
	return snapshot.ForFile(path)
}

func isStdinRequest(paths []string) bool {
	return len(paths) == 1 && paths[0] == stdinPath
}
