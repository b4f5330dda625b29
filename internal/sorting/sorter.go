package sorting

import (
	"sort"

	"github.com/codetidy/usort/internal/directive"
)

// Sorter reorders the statements of one using block: it attaches comments to
// the using directive that follows them, partitions by kind, sorts and
// deduplicates the using partitions, and recomposes in a fixed category
// order. It consumes its input and returns a fresh slice.
type Sorter struct {
	Comparator     Comparator
	AliasPlacement AliasPlacement
}

func NewSorter(primaryNamespace string, placement AliasPlacement) Sorter {
	return Sorter{
		Comparator:     Comparator{PrimaryNamespace: primaryNamespace},
		AliasPlacement: placement,
	}
}

func (s Sorter) Sort(statements []*directive.Statement) []*directive.Statement {
	attached := attachComments(statements)

	orphans := make([]*directive.Statement, 0)
	conditionals := make([]*directive.Statement, 0)
	aliases := make([]*directive.Statement, 0)
	regulars := make([]*directive.Statement, 0)

	for _, statement := range attached {
		switch statement.Kind {
		case directive.KindComment:
			orphans = append(orphans, statement)
		case directive.KindConditional:
			conditionals = append(conditionals, statement)
		case directive.KindAliasUsing:
			aliases = append(aliases, statement)
		case directive.KindUsing:
			regulars = append(regulars, statement)
		}
		// Blank lines are dropped here; the group splitter and block
		// serialization reintroduce the ones that belong.
	}

	regulars = s.sortAndDedup(regulars)
	aliases = s.sortAndDedup(aliases)

	result := make([]*directive.Statement, 0, len(attached))
	result = append(result, orphans...)
	switch s.AliasPlacement {
	case AliasTop:
		result = append(result, aliases...)
		result = append(result, regulars...)
	case AliasIntermixed:
		merged := append(append([]*directive.Statement{}, regulars...), aliases...)
		merged = s.sortAndDedup(merged)
		result = append(result, merged...)
	default:
		result = append(result, regulars...)
		result = append(result, aliases...)
	}
	result = append(result, conditionals...)
	return result
}

func (s Sorter) sortAndDedup(usings []*directive.Statement) []*directive.Statement {
	sorted := append([]*directive.Statement{}, usings...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return s.Comparator.Less(
			sorted[i].RootNamespace(), sorted[i].NamespacePath,
			sorted[j].RootNamespace(), sorted[j].NamespacePath,
		)
	})

	seen := make(map[string]bool, len(sorted))
	deduped := sorted[:0]
	for _, statement := range sorted {
		key := statement.DedupKey()
		if seen[key] {
			continue
		}
		seen[key] = true
		deduped = append(deduped, statement)
	}
	return deduped
}

// attachComments walks the statements in order and moves each run of
// consecutive comments onto the using directive that follows it. A run that
// instead hits a conditional directive, a blank line, or the end of the block
// is flushed in place as orphaned comments.
func attachComments(statements []*directive.Statement) []*directive.Statement {
	output := make([]*directive.Statement, 0, len(statements))
	pending := make([]*directive.Statement, 0)

	flush := func() {
		output = append(output, pending...)
		pending = pending[:0]
	}

	for _, statement := range statements {
		switch {
		case statement.Kind == directive.KindComment:
			pending = append(pending, statement)
		case statement.IsUsing():
			clone := *statement
			clone.Leading = append(append([]*directive.Statement{}, statement.Leading...), pending...)
			pending = pending[:0]
			output = append(output, &clone)
		default:
			flush()
			output = append(output, statement)
		}
	}
	flush()
	return output
}
