package directive

import (
	"testing"
)

func TestParseClassifiesKinds(t *testing.T) {
	cases := []struct {
		name string
		line string
		kind Kind
	}{
		{"blank", "", KindBlank},
		{"whitespace only", "   \t ", KindBlank},
		{"if directive", "#if DEBUG", KindConditional},
		{"indented elif", "  #elif NET6_0", KindConditional},
		{"else", "#else", KindConditional},
		{"endif", "#endif", KindConditional},
		{"region", "#region usings", KindConditional},
		{"endregion", "#endregion", KindConditional},
		{"spaced hash", "# region tools", KindConditional},
		{"pragma is not a block line", "#pragma warning disable", KindOther},
		{"regular using", "using System;", KindUsing},
		{"dotted using", "using System.Collections.Generic;", KindUsing},
		{"indented using", "    using Foo.Bar;", KindUsing},
		{"static using", "using static System.Math;", KindUsing},
		{"global using", "global using System;", KindUsing},
		{"global static using", "global using static System.Math;", KindUsing},
		{"alias using", "using Console = System.Console;", KindAliasUsing},
		{"global alias using", "global using Out = System.Console;", KindAliasUsing},
		{"comment", "// copyright", KindComment},
		{"indented comment", "   // note", KindComment},
		{"namespace line", "namespace Foo;", KindOther},
		{"code line", "var x = 1;", KindOther},
		{"using statement form", "using (var reader = Open())", KindOther},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Parse(tc.line)
			if got.Kind != tc.kind {
				t.Fatalf("Parse(%q) kind = %s, want %s", tc.line, got.Kind, tc.kind)
			}
		})
	}
}

func TestParseExtractsNamespace(t *testing.T) {
	statement := Parse("  using   System.Collections.Generic ;")
	if statement.Kind != KindUsing {
		t.Fatalf("expected using, got %s", statement.Kind)
	}
	if statement.NamespacePath != "System.Collections.Generic" {
		t.Fatalf("unexpected namespace path %q", statement.NamespacePath)
	}
	if statement.RootNamespace() != "System" {
		t.Fatalf("unexpected root namespace %q", statement.RootNamespace())
	}
}

func TestParseStripsGlobalQualifier(t *testing.T) {
	statement := Parse("using global::System.Text;")
	if statement.NamespacePath != "System.Text" {
		t.Fatalf("unexpected namespace path %q", statement.NamespacePath)
	}
}

func TestParseAlias(t *testing.T) {
	statement := Parse("using Console = System.Console;")
	if statement.Alias != "Console" {
		t.Fatalf("unexpected alias %q", statement.Alias)
	}
	if statement.NamespacePath != "System.Console" {
		t.Fatalf("unexpected namespace path %q", statement.NamespacePath)
	}
}

func TestStringRoundTrips(t *testing.T) {
	lines := []string{
		"using System;",
		"   using   Foo.Bar ;",
		"using static System.Math;",
		"global using System.IO;",
		"global using static System.Math;",
		"using IO = System.IO;",
		"// a comment",
		"#if DEBUG",
		"",
	}
	for _, line := range lines {
		first := Parse(line)
		second := Parse(first.String())
		if !first.Equal(second) {
			t.Fatalf("round trip changed %q: %q -> %q", line, first.String(), second.String())
		}
	}
}

func TestStringCanonicalizesWhitespace(t *testing.T) {
	statement := Parse("   using    System.Linq   ;")
	if got := statement.String(); got != "using System.Linq;" {
		t.Fatalf("unexpected rendering %q", got)
	}
}

func TestDedupKey(t *testing.T) {
	same := []string{"using System.IO;", "   using System.IO ;"}
	if Parse(same[0]).DedupKey() != Parse(same[1]).DedupKey() {
		t.Fatal("expected equal dedup keys for equivalent usings")
	}

	distinct := []string{
		"using System.IO;",
		"using static System.IO;",
		"global using System.IO;",
		"using IO = System.IO;",
	}
	seen := make(map[string]string)
	for _, line := range distinct {
		key := Parse(line).DedupKey()
		if prior, ok := seen[key]; ok {
			t.Fatalf("lines %q and %q share dedup key %q", prior, line, key)
		}
		seen[key] = line
	}

	if Parse("// comment").DedupKey() != "" {
		t.Fatal("non-using statements must have empty dedup keys")
	}
}

func TestDirectiveToken(t *testing.T) {
	cases := map[string]string{
		"#if DEBUG":      "if",
		"#elif NET":      "elif",
		"#else":          "else",
		"#endif":         "endif",
		"#region x":      "region",
		"#endregion":     "endregion",
		"using System;":  "",
		"// #if comment": "",
	}
	for line, want := range cases {
		if got := Parse(line).DirectiveToken(); got != want {
			t.Fatalf("DirectiveToken(%q) = %q, want %q", line, got, want)
		}
	}
}

func TestIsUsing(t *testing.T) {
	if !Parse("using System;").IsUsing() {
		t.Fatal("regular using must count as a using")
	}
	if !Parse("using A = B.C;").IsUsing() {
		t.Fatal("alias using must count as a using")
	}
	if Parse("// using System;").IsUsing() {
		t.Fatal("comment must not count as a using")
	}
	if Parse("#if X").IsUsing() {
		t.Fatal("conditional must not count as a using")
	}
}
