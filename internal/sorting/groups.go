package sorting

import (
	"github.com/codetidy/usort/internal/directive"
)

// SplitGroups inserts a single blank line between adjacent using directives
// whose root namespaces differ. It runs after sorting, touches only
// using-to-using adjacency, and is idempotent: an existing separating blank
// suppresses insertion, so running it on already-split output changes
// nothing.
func SplitGroups(statements []*directive.Statement) []*directive.Statement {
	result := make([]*directive.Statement, 0, len(statements))

	var previousUsing *directive.Statement
	previousWasBlank := false
	for _, statement := range statements {
		if statement.IsUsing() && previousUsing != nil && !previousWasBlank &&
			statement.RootNamespace() != previousUsing.RootNamespace() {
			result = append(result, directive.Blank())
		}
		result = append(result, statement)

		previousWasBlank = statement.Kind == directive.KindBlank
		if statement.IsUsing() {
			previousUsing = statement
		} else if statement.Kind != directive.KindBlank {
			previousUsing = nil
		}
	}
	return result
}
