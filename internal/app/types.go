package app

import (
	"time"

	"github.com/codetidy/usort/internal/config"
	"github.com/codetidy/usort/internal/report"
)

type Mode string

const (
	ModeOrganize Mode = "organize"
	ModeCheck    Mode = "check"
	ModeWatch    Mode = "watch"
)

type Request struct {
	Mode     Mode
	RepoPath string
	Organize OrganizeRequest
}

type OrganizeRequest struct {
	// Paths are explicit source files; empty means discover under RepoPath.
	// The single path "-" reads one document from stdin and writes the
	// organized text to stdout.
	Paths           []string
	Write           bool
	Format          report.Format
	DiagnosticsPath string
	ConfigPath      string
	Debounce        time.Duration
	Options         config.Options
}

func DefaultRequest() Request {
	return Request{
		Mode:     ModeOrganize,
		RepoPath: ".",
		Organize: OrganizeRequest{
			Format:  report.FormatTable,
			Options: config.Defaults(),
		},
	}
}
