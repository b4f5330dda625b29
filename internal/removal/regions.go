package removal

import (
	"github.com/codetidy/usort/internal/directive"
)

// Range is a span of block-local statement indices whose endpoints are both
// conditional-directive lines. Containment checks are inclusive on both ends.
type Range struct {
	Start int
	End   int
}

func (r Range) Contains(index int) bool {
	return index >= r.Start && index <= r.End
}

type markerKind int

const (
	markerIf markerKind = iota
	markerRegion
)

type openMarker struct {
	kind  markerKind
	index int
}

// ConditionalRanges finds matched #if/#elif/#else/#endif and
// #region/#endregion spans using a tagged stack. Each #elif/#else branch
// closes the previous branch's range and opens its own, so every branch is
// its own bounded span. Unmatched closers and kind mismatches are skipped,
// never errors: malformed nesting just yields fewer ranges.
func ConditionalRanges(statements []*directive.Statement) []Range {
	ranges := make([]Range, 0)
	stack := make([]openMarker, 0, 4)

	top := func() (openMarker, bool) {
		if len(stack) == 0 {
			return openMarker{}, false
		}
		return stack[len(stack)-1], true
	}

	for index, statement := range statements {
		switch statement.DirectiveToken() {
		case "if":
			stack = append(stack, openMarker{kind: markerIf, index: index})
		case "region":
			stack = append(stack, openMarker{kind: markerRegion, index: index})
		case "elif", "else":
			if marker, ok := top(); ok && marker.kind == markerIf {
				ranges = append(ranges, Range{Start: marker.index, End: index})
				stack[len(stack)-1] = openMarker{kind: markerIf, index: index}
			}
		case "endif":
			if marker, ok := top(); ok && marker.kind == markerIf {
				ranges = append(ranges, Range{Start: marker.index, End: index})
				stack = stack[:len(stack)-1]
			}
		case "endregion":
			if marker, ok := top(); ok && marker.kind == markerRegion {
				ranges = append(ranges, Range{Start: marker.index, End: index})
				stack = stack[:len(stack)-1]
			}
		}
	}

	return ranges
}

func insideAnyRange(ranges []Range, index int) bool {
	for _, r := range ranges {
		if r.Contains(index) {
			return true
		}
	}
	return false
}
