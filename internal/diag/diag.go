package diag

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Recognized analyzer codes. CS8019 and IDE0005 both mean "using directive is
// unnecessary"; the compiler and the IDE analyzer generations disagree on the
// spelling. CS0246 means the type or namespace could not be resolved, which
// makes any overlapping unused judgment untrustworthy.
const (
	CodeUnusedCompiler = "CS8019"
	CodeUnusedAnalyzer = "IDE0005"
	CodeUnresolved     = "CS0246"
)

// SourceCSharp tags diagnostics produced for C# documents. A file whose
// snapshot carries no diagnostic with this tag has not been analyzed yet.
const SourceCSharp = "csharp"

// Position is a zero-based line/column pair.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Diagnostic is one analyzer finding, already normalized: Code is always the
// bare code string regardless of which wire shape carried it.
type Diagnostic struct {
	Code   string
	Source string
	Start  Position
	End    Position
}

// IsUnusedUsing reports whether the diagnostic flags an unnecessary using
// directive.
func (d Diagnostic) IsUnusedUsing() bool {
	switch d.Code {
	case CodeUnusedCompiler, CodeUnusedAnalyzer:
		return true
	default:
		return false
	}
}

// IsUnresolvedSymbol reports whether the diagnostic flags an unresolvable
// type or namespace.
func (d Diagnostic) IsUnresolvedSymbol() bool {
	return d.Code == CodeUnresolved
}

// CoversLine reports whether fileLine falls inside the diagnostic's
// (possibly multi-line) range.
func (d Diagnostic) CoversLine(fileLine int) bool {
	return fileLine >= d.Start.Line && fileLine <= d.End.Line
}

// codeValue absorbs the two legacy wire shapes of a diagnostic code: a bare
// string, or a structured {"value": "..."} object.
type codeValue string

func (c *codeValue) UnmarshalJSON(data []byte) error {
	var plain string
	if err := json.Unmarshal(data, &plain); err == nil {
		*c = codeValue(plain)
		return nil
	}

	var structured struct {
		Value string `json:"value"`
	}
	if err := json.Unmarshal(data, &structured); err != nil {
		return fmt.Errorf("diagnostic code is neither a string nor an object: %w", err)
	}
	*c = codeValue(structured.Value)
	return nil
}

// Reliable reports whether a file's diagnostics snapshot can be trusted for
// removal decisions. It is false when no diagnostic carries the C# source tag
// (the analyzer has not finished), or when every using line is flagged unused
// and the file has more than allUnusedThreshold usings, which signals a
// still-loading project graph rather than a genuinely all-dead block.
func Reliable(diagnostics []Diagnostic, usingLines []int, allUnusedThreshold int) bool {
	tagged := false
	for _, diagnostic := range diagnostics {
		if strings.EqualFold(diagnostic.Source, SourceCSharp) {
			tagged = true
			break
		}
	}
	if !tagged {
		return false
	}

	if len(usingLines) <= allUnusedThreshold {
		return true
	}
	for _, line := range usingLines {
		if !lineFlaggedUnused(diagnostics, line) {
			return true
		}
	}
	return false
}

func lineFlaggedUnused(diagnostics []Diagnostic, fileLine int) bool {
	for _, diagnostic := range diagnostics {
		if diagnostic.IsUnusedUsing() && diagnostic.CoversLine(fileLine) {
			return true
		}
	}
	return false
}
