package block

import (
	"github.com/codetidy/usort/internal/directive"
)

// Block is one maximal contiguous run of using-related lines. Leading holds
// header comments and blanks immediately before the first statement; they are
// kept as raw strings, not statements, so that diagnostic line mapping has a
// well-defined offset. StartLine and EndLine are absolute zero-based file
// lines of the full span, Leading included, and exist solely for mapping
// diagnostics onto statement indices.
type Block struct {
	StartLine int
	EndLine   int
	Leading   []string
	// Statements covers every physical line between the leading content and
	// the end of the span, blank lines included, so that index i corresponds
	// to file line StartLine+len(Leading)+i.
	Statements []*directive.Statement
	// FollowedByCode records whether a non-block line terminated the span.
	// It decides whether serialization appends a separating blank line.
	FollowedByCode bool
}

// StatementOffset is the file line of the first statement.
func (b *Block) StatementOffset() int {
	return b.StartLine + len(b.Leading)
}

// LocalIndex converts an absolute file line to a statement index. The result
// may be out of range; callers bounds-check it.
func (b *Block) LocalIndex(fileLine int) int {
	return fileLine - b.StartLine - len(b.Leading)
}

// UsingCount counts actual using directives in the block.
func (b *Block) UsingCount() int {
	count := 0
	for _, statement := range b.Statements {
		if statement.IsUsing() {
			count++
		}
	}
	return count
}

// Lines serializes the block back to physical lines. Trailing blank lines are
// normalized: however many the source carried, the output ends with exactly
// one when code follows the block and none at end of file. This
// normalization, paired with the extractor capturing every trailing blank
// into the span, is what keeps repeated runs byte-stable.
func (b *Block) Lines() []string {
	lines := make([]string, 0, len(b.Leading)+len(b.Statements)+1)
	lines = append(lines, b.Leading...)

	statements := b.Statements
	for len(statements) > 0 && statements[len(statements)-1].Kind == directive.KindBlank {
		statements = statements[:len(statements)-1]
	}
	for _, statement := range statements {
		for _, comment := range statement.Leading {
			lines = append(lines, comment.String())
		}
		lines = append(lines, statement.String())
	}

	if b.FollowedByCode {
		lines = append(lines, "")
	}
	return lines
}

// WithStatements returns a copy of the block holding the given statements.
// Stages of the pipeline hand fresh slices to each other instead of mutating
// a shared one.
func (b *Block) WithStatements(statements []*directive.Statement) *Block {
	clone := *b
	clone.Statements = statements
	return &clone
}
