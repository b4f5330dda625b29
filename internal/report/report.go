package report

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/codetidy/usort/internal/organize"
)

type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatSARIF Format = "sarif"
)

const SchemaVersion = "0.1.0"

var ErrUnknownFormat = errors.New("unknown format")

func ParseFormat(value string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", string(FormatTable):
		return FormatTable, nil
	case string(FormatJSON):
		return FormatJSON, nil
	case string(FormatSARIF):
		return FormatSARIF, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownFormat, value)
	}
}

// Report is one run's outcome across all processed files.
type Report struct {
	SchemaVersion string       `json:"schemaVersion"`
	GeneratedAt   time.Time    `json:"generatedAt"`
	RepoPath      string       `json:"repoPath"`
	CommitSHA     string       `json:"commitSha,omitempty"`
	CheckOnly     bool         `json:"checkOnly,omitempty"`
	Files         []FileResult `json:"files"`
	Summary       Summary      `json:"summary"`
	Warnings      []string     `json:"warnings,omitempty"`
}

type FileResult struct {
	Path    string                  `json:"path"`
	Status  string                  `json:"status"`
	Removed []organize.RemovedUsing `json:"removed,omitempty"`
	Message string                  `json:"message,omitempty"`
}

type Summary struct {
	Scanned       int `json:"scanned"`
	Changed       int `json:"changed"`
	Unchanged     int `json:"unchanged"`
	Failed        int `json:"failed"`
	RemovedUsings int `json:"removedUsings"`
}

// New seeds a report with run metadata.
func New(repoPath string, checkOnly bool) Report {
	return Report{
		SchemaVersion: SchemaVersion,
		GeneratedAt:   time.Now().UTC(),
		RepoPath:      repoPath,
		CheckOnly:     checkOnly,
		Files:         make([]FileResult, 0),
	}
}

// Add records one file's result and folds it into the summary.
func (r *Report) Add(result FileResult) {
	r.Files = append(r.Files, result)
	r.Summary.Scanned++
	r.Summary.RemovedUsings += len(result.Removed)
	switch result.Status {
	case organize.StatusChanged.String():
		r.Summary.Changed++
	case organize.StatusFailed.String():
		r.Summary.Failed++
	default:
		r.Summary.Unchanged++
	}
}

// AddWarning appends a non-fatal run warning (unreadable diagnostics file,
// skipped generated source, and the like).
func (r *Report) AddWarning(message string) {
	r.Warnings = append(r.Warnings, message)
}
