package sorting

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSplitGroupsInsertsOneBlankBetweenRoots(t *testing.T) {
	statements := parseAll(t,
		"using System;",
		"using System.Text;",
		"using Foo.Bar;",
		"using Foo.Baz;",
		"using Zed;",
	)

	got := rendered(SplitGroups(statements))
	want := []string{
		"using System;",
		"using System.Text;",
		"",
		"using Foo.Bar;",
		"using Foo.Baz;",
		"",
		"using Zed;",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected grouping (-want +got):\n%s", diff)
	}
}

func TestSplitGroupsIdempotent(t *testing.T) {
	statements := parseAll(t,
		"using System;",
		"using Foo.Bar;",
	)

	once := SplitGroups(statements)
	twice := SplitGroups(once)
	if diff := cmp.Diff(rendered(once), rendered(twice)); diff != "" {
		t.Fatalf("second split changed output (-once +twice):\n%s", diff)
	}
	if len(twice) != 3 {
		t.Fatalf("expected 3 statements after split, got %d", len(twice))
	}
}

func TestSplitGroupsIgnoresConditionals(t *testing.T) {
	statements := parseAll(t,
		"using Alpha;",
		"#if DEBUG",
		"using Zed;",
	)

	got := rendered(SplitGroups(statements))
	want := []string{"using Alpha;", "#if DEBUG", "using Zed;"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("splitter must not separate across directives (-want +got):\n%s", diff)
	}
}

func TestSplitGroupsSameRootStaysTogether(t *testing.T) {
	statements := parseAll(t,
		"using Foo.Bar;",
		"using Foo.Baz;",
	)
	if got := SplitGroups(statements); len(got) != 2 {
		t.Fatalf("same-root usings must stay adjacent, got %d statements", len(got))
	}
}
