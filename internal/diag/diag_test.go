package diag

import (
	"encoding/json"
	"testing"
)

func TestIsUnusedUsing(t *testing.T) {
	cases := []struct {
		code string
		want bool
	}{
		{CodeUnusedCompiler, true},
		{CodeUnusedAnalyzer, true},
		{CodeUnresolved, false},
		{"CS1002", false},
		{"", false},
	}
	for _, tc := range cases {
		d := Diagnostic{Code: tc.code}
		if got := d.IsUnusedUsing(); got != tc.want {
			t.Fatalf("IsUnusedUsing(%q) = %v, want %v", tc.code, got, tc.want)
		}
	}
}

func TestCoversLine(t *testing.T) {
	d := Diagnostic{Start: Position{Line: 2}, End: Position{Line: 4}}
	for _, line := range []int{2, 3, 4} {
		if !d.CoversLine(line) {
			t.Fatalf("expected line %d covered", line)
		}
	}
	for _, line := range []int{1, 5} {
		if d.CoversLine(line) {
			t.Fatalf("expected line %d not covered", line)
		}
	}
}

func TestCodeValueString(t *testing.T) {
	var c codeValue
	if err := json.Unmarshal([]byte(`"CS8019"`), &c); err != nil {
		t.Fatalf("unmarshal string code: %v", err)
	}
	if c != "CS8019" {
		t.Fatalf("unexpected code %q", c)
	}
}

func TestCodeValueStructured(t *testing.T) {
	var c codeValue
	if err := json.Unmarshal([]byte(`{"value": "IDE0005"}`), &c); err != nil {
		t.Fatalf("unmarshal structured code: %v", err)
	}
	if c != "IDE0005" {
		t.Fatalf("unexpected code %q", c)
	}
}

func TestCodeValueRejectsOtherShapes(t *testing.T) {
	var c codeValue
	if err := json.Unmarshal([]byte(`42`), &c); err == nil {
		t.Fatal("expected an error for a numeric code")
	}
}

func TestReliableRequiresSourceTag(t *testing.T) {
	diagnostics := []Diagnostic{
		{Code: CodeUnusedCompiler, Start: Position{Line: 0}, End: Position{Line: 0}},
	}
	if Reliable(diagnostics, []int{0}, 3) {
		t.Fatal("diagnostics without the language tag must be unreliable")
	}
}

func TestReliableSourceTagCaseInsensitive(t *testing.T) {
	diagnostics := []Diagnostic{
		{Code: CodeUnusedCompiler, Source: "CSharp", Start: Position{Line: 5}, End: Position{Line: 5}},
	}
	if !Reliable(diagnostics, []int{0, 1}, 3) {
		t.Fatal("tag comparison must ignore case")
	}
}

func TestReliableAllUnusedAboveThreshold(t *testing.T) {
	usingLines := []int{0, 1, 2, 3}
	diagnostics := make([]Diagnostic, 0, len(usingLines))
	for _, line := range usingLines {
		diagnostics = append(diagnostics, Diagnostic{
			Code:   CodeUnusedCompiler,
			Source: SourceCSharp,
			Start:  Position{Line: line},
			End:    Position{Line: line},
		})
	}
	if Reliable(diagnostics, usingLines, 3) {
		t.Fatal("every using flagged unused above the threshold must be unreliable")
	}
}

func TestReliableAllUnusedAtThreshold(t *testing.T) {
	usingLines := []int{0, 1, 2}
	diagnostics := make([]Diagnostic, 0, len(usingLines))
	for _, line := range usingLines {
		diagnostics = append(diagnostics, Diagnostic{
			Code:   CodeUnusedAnalyzer,
			Source: SourceCSharp,
			Start:  Position{Line: line},
			End:    Position{Line: line},
		})
	}
	if !Reliable(diagnostics, usingLines, 3) {
		t.Fatal("small files may legitimately have every using unused")
	}
}

func TestReliableSomeUsingsSurvive(t *testing.T) {
	diagnostics := []Diagnostic{
		{Code: CodeUnusedCompiler, Source: SourceCSharp, Start: Position{Line: 0}, End: Position{Line: 2}},
	}
	if !Reliable(diagnostics, []int{0, 1, 2, 3, 4}, 3) {
		t.Fatal("a file with unflagged usings must be reliable")
	}
}
