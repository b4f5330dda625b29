package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xeipuuv/gojsonschema"

	"github.com/codetidy/usort/internal/organize"
)

func sampleReport() Report {
	r := New("/repo", false)
	r.Add(FileResult{Path: "/repo/src/Program.cs", Status: "changed", Removed: []organize.RemovedUsing{
		{Namespace: "Unused.Lib", Line: 2},
	}})
	r.Add(FileResult{Path: "/repo/src/Other.cs", Status: "no-change"})
	r.Add(FileResult{Path: "/repo/src/Broken.cs", Status: "failed", Message: "organize: boom"})
	r.AddWarning("diagnostics snapshot unreadable")
	return r
}

func TestFormatTable(t *testing.T) {
	output, err := NewFormatter().Format(sampleReport(), FormatTable)
	if err != nil {
		t.Fatalf("format table: %v", err)
	}

	if !strings.Contains(output, "Summary: 3 files, 1 changed, 1 unchanged, 1 failed, 1 usings removed") {
		t.Fatalf("missing summary line:\n%s", output)
	}
	if !strings.Contains(output, "FILE") || !strings.Contains(output, "STATUS") {
		t.Fatalf("missing table header:\n%s", output)
	}
	if !strings.Contains(output, "/repo/src/Program.cs") {
		t.Fatalf("missing file row:\n%s", output)
	}
	// Removed lines render one-based for humans.
	if !strings.Contains(output, "- /repo/src/Program.cs:3 Unused.Lib") {
		t.Fatalf("missing removed listing:\n%s", output)
	}
	if !strings.Contains(output, "Warnings:\n- diagnostics snapshot unreadable") {
		t.Fatalf("missing warnings section:\n%s", output)
	}
}

func TestFormatTableEmptyRun(t *testing.T) {
	output, err := NewFormatter().Format(New("/repo", false), FormatTable)
	if err != nil {
		t.Fatalf("format table: %v", err)
	}
	if !strings.Contains(output, "Summary: 0 files") {
		t.Fatalf("unexpected output:\n%s", output)
	}
	if strings.Contains(output, "FILE") {
		t.Fatalf("empty run must not render a table:\n%s", output)
	}
}

func TestFormatJSON(t *testing.T) {
	output, err := NewFormatter().Format(sampleReport(), FormatJSON)
	if err != nil {
		t.Fatalf("format json: %v", err)
	}

	var decoded Report
	if err := json.Unmarshal([]byte(output), &decoded); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if decoded.SchemaVersion != SchemaVersion {
		t.Fatalf("unexpected schema version %q", decoded.SchemaVersion)
	}
	if decoded.Summary.Scanned != 3 {
		t.Fatalf("unexpected summary %+v", decoded.Summary)
	}
	if len(decoded.Files) != 3 {
		t.Fatalf("expected 3 files, got %d", len(decoded.Files))
	}
}

func TestFormatSARIF(t *testing.T) {
	output, err := NewFormatter().Format(sampleReport(), FormatSARIF)
	if err != nil {
		t.Fatalf("format sarif: %v", err)
	}

	schema, err := os.ReadFile(filepath.Join("testdata", "sarif-2.1.0.schema.json"))
	if err != nil {
		t.Fatalf("read schema: %v", err)
	}
	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schema),
		gojsonschema.NewStringLoader(output),
	)
	if err != nil {
		t.Fatalf("validate sarif: %v", err)
	}
	if !result.Valid() {
		for _, item := range result.Errors() {
			t.Logf("schema violation: %s", item)
		}
		t.Fatal("sarif output failed schema validation")
	}

	if !strings.Contains(output, `"ruleId": "USORT0001"`) {
		t.Fatalf("missing unorganized result:\n%s", output)
	}
	if !strings.Contains(output, `"ruleId": "USORT0002"`) {
		t.Fatalf("missing removable result:\n%s", output)
	}
	if !strings.Contains(output, `"ruleId": "USORT0003"`) {
		t.Fatalf("missing failed result:\n%s", output)
	}
	// Paths under the repo root render as relative URIs.
	if !strings.Contains(output, `"uri": "src/Program.cs"`) {
		t.Fatalf("expected repo-relative URI:\n%s", output)
	}
	// Region lines are one-based.
	if !strings.Contains(output, `"startLine": 3`) {
		t.Fatalf("expected one-based region line:\n%s", output)
	}
}

func TestFormatUnknown(t *testing.T) {
	if _, err := NewFormatter().Format(sampleReport(), Format("xml")); err == nil {
		t.Fatal("expected an error for an unknown format")
	}
}
