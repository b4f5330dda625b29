package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"text/tabwriter"
)

type Formatter struct{}

func NewFormatter() Formatter {
	return Formatter{}
}

func (f Formatter) Format(report Report, format Format) (string, error) {
	switch format {
	case FormatTable:
		return formatTable(report), nil
	case FormatJSON:
		payload, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return "", err
		}
		return string(payload) + "\n", nil
	case FormatSARIF:
		return formatSARIF(report)
	default:
		return "", ErrUnknownFormat
	}
}

func formatTable(report Report) string {
	var buffer bytes.Buffer
	appendSummary(&buffer, report.Summary)

	if len(report.Files) > 0 {
		writer := tabwriter.NewWriter(&buffer, 0, 0, 2, ' ', 0)
		_, _ = fmt.Fprintln(writer, "FILE\tSTATUS\tREMOVED\tMESSAGE")
		for _, file := range report.Files {
			_, _ = fmt.Fprintf(writer, "%s\t%s\t%d\t%s\n", file.Path, file.Status, len(file.Removed), file.Message)
		}
		_ = writer.Flush()
	}

	appendRemoved(&buffer, report.Files)
	appendWarnings(&buffer, report.Warnings)
	return buffer.String()
}

func appendSummary(buffer *bytes.Buffer, summary Summary) {
	_, _ = fmt.Fprintf(
		buffer,
		"Summary: %d files, %d changed, %d unchanged, %d failed, %d usings removed\n\n",
		summary.Scanned,
		summary.Changed,
		summary.Unchanged,
		summary.Failed,
		summary.RemovedUsings,
	)
}

func appendRemoved(buffer *bytes.Buffer, files []FileResult) {
	wroteHeader := false
	for _, file := range files {
		for _, removed := range file.Removed {
			if !wroteHeader {
				buffer.WriteString("\nRemoved usings:\n")
				wroteHeader = true
			}
			_, _ = fmt.Fprintf(buffer, "- %s:%d %s\n", file.Path, removed.Line+1, removed.Namespace)
		}
	}
}

func appendWarnings(buffer *bytes.Buffer, warnings []string) {
	if len(warnings) == 0 {
		return
	}
	buffer.WriteString("\nWarnings:\n")
	for _, warning := range warnings {
		buffer.WriteString("- ")
		buffer.WriteString(warning)
		buffer.WriteString("\n")
	}
}
