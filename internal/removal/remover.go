package removal

import (
	"github.com/codetidy/usort/internal/block"
	"github.com/codetidy/usort/internal/diag"
	"github.com/codetidy/usort/internal/directive"
)

// Options narrows removal behavior for one run.
type Options struct {
	DisableRemoval            bool
	ProcessConditionalRegions bool
}

// Remove filters the block's statements down to the ones the diagnostics
// confirm removable, returning the retained statements and the removed ones
// in their original order. An empty or unusable diagnostics list removes
// nothing: the failure mode is keep-everything, never delete-by-accident.
func Remove(b *block.Block, diagnostics []diag.Diagnostic, opts Options) (kept, removed []*directive.Statement) {
	statements := append([]*directive.Statement{}, b.Statements...)
	if opts.DisableRemoval || len(diagnostics) == 0 {
		return statements, nil
	}

	unused := unusedIndices(b, diagnostics)
	if !opts.ProcessConditionalRegions {
		ranges := ConditionalRanges(b.Statements)
		for index := range unused {
			if insideAnyRange(ranges, index) {
				delete(unused, index)
			}
		}
	}

	kept = make([]*directive.Statement, 0, len(statements))
	removed = make([]*directive.Statement, 0, len(unused))
	for index, statement := range statements {
		if unused[index] {
			removed = append(removed, statement)
			continue
		}
		kept = append(kept, statement)
	}
	return kept, removed
}

// unusedIndices maps unused-using diagnostic spans onto block-local
// statement indices. Every covered file line converts via the block's
// leading-content offset; lines that also carry an unresolved-symbol
// diagnostic are excluded one by one, so within a multi-line unused span
// only the offending line survives while the rest still goes. Only indices
// that land on an actual using directive qualify.
func unusedIndices(b *block.Block, diagnostics []diag.Diagnostic) map[int]bool {
	protected := unresolvedLines(diagnostics)

	unused := make(map[int]bool)
	for _, diagnostic := range diagnostics {
		if !diagnostic.IsUnusedUsing() {
			continue
		}
		for line := diagnostic.Start.Line; line <= diagnostic.End.Line; line++ {
			if protected[line] {
				continue
			}
			index := b.LocalIndex(line)
			if index < 0 || index >= len(b.Statements) {
				continue
			}
			if !b.Statements[index].IsUsing() {
				continue
			}
			unused[index] = true
		}
	}
	return unused
}

// unresolvedLines collects file lines carrying a not-found diagnostic. An
// unresolved symbol on a line means the analyzer's unused judgment for that
// line cannot be trusted.
func unresolvedLines(diagnostics []diag.Diagnostic) map[int]bool {
	lines := make(map[int]bool)
	for _, diagnostic := range diagnostics {
		if !diagnostic.IsUnresolvedSymbol() {
			continue
		}
		for line := diagnostic.Start.Line; line <= diagnostic.End.Line; line++ {
			lines[line] = true
		}
	}
	return lines
}
