package directive

import (
	"fmt"
	"regexp"
	"strings"
)

// Kind classifies one physical line of a using block. Every line maps to
// exactly one kind.
type Kind int

const (
	KindOther Kind = iota
	KindBlank
	KindConditional
	KindAliasUsing
	KindUsing
	KindComment
)

func (k Kind) String() string {
	switch k {
	case KindBlank:
		return "blank"
	case KindConditional:
		return "conditional"
	case KindAliasUsing:
		return "alias-using"
	case KindUsing:
		return "using"
	case KindComment:
		return "comment"
	default:
		return "other"
	}
}

const lineCommentMarker = "//"

var (
	aliasUsingPattern   = regexp.MustCompile(`^\s*((?:global\s+)?using)\s+([A-Za-z_][A-Za-z0-9_]*)\s*=\s*([A-Za-z_][A-Za-z0-9_\.:]*)\s*;`)
	regularUsingPattern = regexp.MustCompile(`^\s*((?:global\s+)?using(?:\s+static)?)\s+([A-Za-z_][A-Za-z0-9_\.:]*)\s*;`)
)

var conditionalTokens = map[string]bool{
	"if":        true,
	"elif":      true,
	"else":      true,
	"endif":     true,
	"region":    true,
	"endregion": true,
}

// Statement models one physical line of the using block plus any comments
// attached to it during sorting.
type Statement struct {
	Raw           string
	Kind          Kind
	Alias         string
	Modifier      string
	NamespacePath string
	Leading       []*Statement
}

// Parse classifies rawLine. Recognition order: blank, conditional directive,
// alias using, regular using, comment, other. Lines that classify as
// KindOther terminate a block and must not be stored in one.
func Parse(rawLine string) *Statement {
	trimmed := strings.TrimSpace(rawLine)
	statement := &Statement{Raw: rawLine, Kind: KindOther}

	switch {
	case trimmed == "":
		statement.Kind = KindBlank
	case isConditionalLine(trimmed):
		statement.Kind = KindConditional
	case aliasUsingPattern.MatchString(rawLine):
		matches := aliasUsingPattern.FindStringSubmatch(rawLine)
		statement.Kind = KindAliasUsing
		statement.Modifier = normalizeModifier(matches[1])
		statement.Alias = matches[2]
		statement.NamespacePath = normalizeNamespace(matches[3])
	case regularUsingPattern.MatchString(rawLine):
		matches := regularUsingPattern.FindStringSubmatch(rawLine)
		statement.Kind = KindUsing
		statement.Modifier = normalizeModifier(matches[1])
		statement.NamespacePath = normalizeNamespace(matches[2])
	case strings.HasPrefix(trimmed, lineCommentMarker):
		statement.Kind = KindComment
	}

	return statement
}

// Blank returns a synthetic blank-line statement.
func Blank() *Statement {
	return &Statement{Raw: "", Kind: KindBlank}
}

// IsUsing reports whether the statement is an actual using directive.
func (s *Statement) IsUsing() bool {
	return s.Kind == KindUsing || s.Kind == KindAliasUsing
}

// RootNamespace returns the first dot-separated segment of the namespace
// path, the grouping and primary-sort key. Empty for non-using statements.
func (s *Statement) RootNamespace() string {
	if s.NamespacePath == "" {
		return ""
	}
	if index := strings.IndexByte(s.NamespacePath, '.'); index >= 0 {
		return s.NamespacePath[:index]
	}
	return s.NamespacePath
}

// DirectiveToken returns the control token of a conditional-directive line
// ("if", "elif", "else", "endif", "region", "endregion"), or "" for any
// other kind.
func (s *Statement) DirectiveToken() string {
	if s.Kind != KindConditional {
		return ""
	}
	return conditionalToken(strings.TrimSpace(s.Raw))
}

// DedupKey identifies duplicate using directives independent of their
// original position. Two statements with equal keys are duplicates. The
// modifier participates so that `using static X` never merges with
// `using X`.
func (s *Statement) DedupKey() string {
	if !s.IsUsing() {
		return ""
	}
	return fmt.Sprintf("using|%s|%s|%s", s.Alias, s.Modifier, s.NamespacePath)
}

// String renders the canonical form of the statement. Re-parsing the result
// yields an equal statement; comments and conditional directives keep their
// trimmed raw text.
func (s *Statement) String() string {
	switch s.Kind {
	case KindBlank:
		return ""
	case KindAliasUsing:
		return fmt.Sprintf("%susing %s = %s;", s.globalPrefix(), s.Alias, s.NamespacePath)
	case KindUsing:
		return fmt.Sprintf("%susing %s%s;", s.globalPrefix(), s.staticInfix(), s.NamespacePath)
	default:
		return strings.TrimSpace(s.Raw)
	}
}

// Equal compares kind and canonical content, ignoring original whitespace.
func (s *Statement) Equal(other *Statement) bool {
	if s == nil || other == nil {
		return s == other
	}
	return s.Kind == other.Kind && s.String() == other.String()
}

// BelongsToBlock reports whether the line may live inside a using block.
// The first line that fails this test terminates extraction.
func (s *Statement) BelongsToBlock() bool {
	return s.Kind != KindOther
}

func (s *Statement) globalPrefix() string {
	if strings.Contains(s.Modifier, "global") {
		return "global "
	}
	return ""
}

func (s *Statement) staticInfix() string {
	if strings.Contains(s.Modifier, "static") {
		return "static "
	}
	return ""
}

func isConditionalLine(trimmed string) bool {
	if !strings.HasPrefix(trimmed, "#") {
		return false
	}
	return conditionalTokens[conditionalToken(trimmed)]
}

func conditionalToken(trimmed string) string {
	rest := strings.TrimSpace(strings.TrimPrefix(trimmed, "#"))
	for index, r := range rest {
		if r == ' ' || r == '\t' {
			return rest[:index]
		}
	}
	return rest
}

func normalizeNamespace(path string) string {
	path = strings.TrimSpace(path)
	return strings.TrimPrefix(path, "global::")
}

func normalizeModifier(keyword string) string {
	fields := strings.Fields(keyword)
	modifiers := make([]string, 0, 2)
	for _, field := range fields {
		if field == "using" {
			continue
		}
		modifiers = append(modifiers, field)
	}
	return strings.Join(modifiers, " ")
}
