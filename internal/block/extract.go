package block

import (
	"github.com/codetidy/usort/internal/directive"
)

// Extract scans whole-file lines for using blocks, in file order. A block is
// a maximal contiguous run of using/comment/blank/conditional lines that
// contains at least one using directive; the first line outside that grammar
// terminates the run. Runs without a using directive yield no block, so a
// file with no usings produces an empty result.
func Extract(lines []string) []*Block {
	blocks := make([]*Block, 0, 1)

	index := 0
	for index < len(lines) {
		statement := directive.Parse(lines[index])
		if !statement.BelongsToBlock() {
			index++
			continue
		}

		runStart := index
		runEnd := index
		for runEnd < len(lines) && directive.Parse(lines[runEnd]).BelongsToBlock() {
			runEnd++
		}

		if candidate := buildBlock(lines, runStart, runEnd, runEnd < len(lines)); candidate != nil {
			blocks = append(blocks, candidate)
		}
		index = runEnd + 1
	}

	return blocks
}

func buildBlock(lines []string, runStart, runEnd int, followedByCode bool) *Block {
	leadingLen := leadingLength(lines, runStart, runEnd)
	statements := make([]*directive.Statement, 0, runEnd-runStart-leadingLen)

	hasUsing := false
	for line := runStart + leadingLen; line < runEnd; line++ {
		statement := directive.Parse(lines[line])
		if statement.IsUsing() {
			hasUsing = true
		}
		statements = append(statements, statement)
	}
	if !hasUsing {
		return nil
	}

	return &Block{
		StartLine:      runStart,
		EndLine:        runEnd - 1,
		Leading:        append([]string(nil), lines[runStart:runStart+leadingLen]...),
		Statements:     statements,
		FollowedByCode: followedByCode,
	}
}

// leadingLength measures the prefix of header comments and blank lines that
// precedes the first using or conditional directive of the run. Those lines
// become the block's leading content rather than statements.
func leadingLength(lines []string, runStart, runEnd int) int {
	length := 0
	for line := runStart; line < runEnd; line++ {
		kind := directive.Parse(lines[line]).Kind
		if kind != directive.KindComment && kind != directive.KindBlank {
			break
		}
		length++
	}
	return length
}
