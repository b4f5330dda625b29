// Package organize runs the full pipeline over one document: extract using
// blocks, drop confirmed-unused directives, sort, split groups, and splice
// the rewritten blocks back into the text.
package organize

import (
	"fmt"
	"strings"

	"github.com/codetidy/usort/internal/block"
	"github.com/codetidy/usort/internal/config"
	"github.com/codetidy/usort/internal/diag"
	"github.com/codetidy/usort/internal/directive"
	"github.com/codetidy/usort/internal/removal"
	"github.com/codetidy/usort/internal/sorting"
)

type Status int

const (
	StatusNoChange Status = iota
	StatusChanged
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusNoChange:
		return "no-change"
	case StatusChanged:
		return "changed"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// RemovedUsing describes one directive dropped by the unused pass, for
// reporting. Line is the absolute zero-based line in the original document.
type RemovedUsing struct {
	Namespace string `json:"namespace"`
	Line      int    `json:"line"`
}

type Result struct {
	Status  Status
	Content string
	Removed []RemovedUsing
	Message string
}

// Document carries one file's text through a run. Diagnostics are the
// immutable snapshot slice for this file only.
type Document struct {
	Text        string
	Diagnostics []diag.Diagnostic
}

// Organize rewrites the document's using blocks under opts. It never touches
// the input on failure: any panic escaping a stage is caught here and
// surfaced as a Failed result carrying the original text untouched.
func Organize(doc Document, opts config.Options) (result Result) {
	defer func() {
		if recovered := recover(); recovered != nil {
			result = Result{
				Status:  StatusFailed,
				Content: doc.Text,
				Message: fmt.Sprintf("organize: %v", recovered),
			}
		}
	}()

	eol := "\n"
	if strings.Contains(doc.Text, "\r\n") {
		eol = "\r\n"
	}
	normalized := strings.ReplaceAll(doc.Text, "\r\n", "\n")
	hadFinalNewline := strings.HasSuffix(normalized, "\n")
	lines := strings.Split(normalized, "\n")
	if hadFinalNewline {
		lines = lines[:len(lines)-1]
	}

	blocks := block.Extract(lines)
	if len(blocks) == 0 {
		return Result{Status: StatusNoChange, Content: doc.Text}
	}

	removalOpts := removal.Options{
		DisableRemoval:            opts.DisableUnusedRemoval || !removalReliable(doc, blocks, opts),
		ProcessConditionalRegions: opts.ProcessConditionalRegions,
	}
	sorter := sorting.NewSorter(opts.PrimaryNamespace, opts.AliasPlacement)

	removed := make([]RemovedUsing, 0)
	// Blocks are spliced back to front so earlier line numbers stay valid.
	for i := len(blocks) - 1; i >= 0; i-- {
		current := blocks[i]

		kept, dropped := removal.Remove(current, doc.Diagnostics, removalOpts)
		removed = append(removedUsings(current, dropped), removed...)

		organized := sorter.Sort(kept)
		if opts.SplitGroups {
			organized = sorting.SplitGroups(organized)
		}

		rewritten := current.WithStatements(organized).Lines()
		lines = splice(lines, current.StartLine, current.EndLine+1, rewritten)
	}

	output := strings.Join(lines, eol)
	if hadFinalNewline {
		output += eol
	}

	if output == doc.Text {
		return Result{Status: StatusNoChange, Content: doc.Text, Removed: nil}
	}
	return Result{Status: StatusChanged, Content: output, Removed: removed}
}

// removalReliable applies the document-level trust heuristic: diagnostics
// must carry the C# tag at all, and an implausibly total all-usings-unused
// verdict on a larger file means the analyzer is still loading the project
// graph.
func removalReliable(doc Document, blocks []*block.Block, opts config.Options) bool {
	usingLines := make([]int, 0)
	for _, b := range blocks {
		offset := b.StatementOffset()
		for index, statement := range b.Statements {
			if statement.IsUsing() {
				usingLines = append(usingLines, offset+index)
			}
		}
	}
	return diag.Reliable(doc.Diagnostics, usingLines, opts.AllUnusedReliabilityThreshold)
}

func removedUsings(b *block.Block, dropped []*directive.Statement) []RemovedUsing {
	if len(dropped) == 0 {
		return nil
	}
	result := make([]RemovedUsing, 0, len(dropped))
	offset := b.StatementOffset()
	for _, statement := range dropped {
		for index, original := range b.Statements {
			if original == statement {
				result = append(result, RemovedUsing{
					Namespace: statement.NamespacePath,
					Line:      offset + index,
				})
				break
			}
		}
	}
	return result
}

func splice(lines []string, start, end int, replacement []string) []string {
	result := make([]string, 0, len(lines)-(end-start)+len(replacement))
	result = append(result, lines[:start]...)
	result = append(result, replacement...)
	result = append(result, lines[end:]...)
	return result
}
