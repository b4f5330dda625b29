package diag

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/codetidy/usort/internal/safeio"
)

// snapshotSchema is the contract for the diagnostics snapshot file. The
// analyzer side has shipped two code shapes over time, so "code" admits both.
const snapshotSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["diagnostics"],
  "properties": {
    "version": {"type": "integer"},
    "diagnostics": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["file", "code", "range"],
        "properties": {
          "file": {"type": "string", "minLength": 1},
          "code": {
            "oneOf": [
              {"type": "string"},
              {
                "type": "object",
                "required": ["value"],
                "properties": {"value": {"type": "string"}}
              }
            ]
          },
          "source": {"type": "string"},
          "range": {
            "type": "object",
            "required": ["start", "end"],
            "properties": {
              "start": {"$ref": "#/definitions/position"},
              "end": {"$ref": "#/definitions/position"}
            }
          }
        }
      }
    }
  },
  "definitions": {
    "position": {
      "type": "object",
      "required": ["line"],
      "properties": {
        "line": {"type": "integer", "minimum": 0},
        "column": {"type": "integer", "minimum": 0}
      }
    }
  }
}`

type snapshotEntry struct {
	File   string    `json:"file"`
	Code   codeValue `json:"code"`
	Source string    `json:"source"`
	Range  struct {
		Start Position `json:"start"`
		End   Position `json:"end"`
	} `json:"range"`
}

type snapshotFile struct {
	Version     int             `json:"version"`
	Diagnostics []snapshotEntry `json:"diagnostics"`
}

// Snapshot is an immutable per-run view of analyzer diagnostics, keyed by
// file path. The engine never re-queries the analyzer mid-run; it only reads
// this snapshot.
type Snapshot struct {
	byFile map[string][]Diagnostic
}

// Empty returns a snapshot with no diagnostics for any file.
func Empty() Snapshot {
	return Snapshot{byFile: map[string][]Diagnostic{}}
}

// ForFile returns the diagnostics recorded for path. Path separators are
// normalized, so entries written on Windows match POSIX lookups.
func (s Snapshot) ForFile(path string) []Diagnostic {
	if s.byFile == nil {
		return nil
	}
	return s.byFile[normalizePath(path)]
}

// Len counts diagnostics across all files.
func (s Snapshot) Len() int {
	total := 0
	for _, diagnostics := range s.byFile {
		total += len(diagnostics)
	}
	return total
}

// Load reads and parses a diagnostics snapshot file.
func Load(path string) (Snapshot, error) {
	data, err := safeio.ReadFile(path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("read diagnostics snapshot %s: %w", path, err)
	}
	snapshot, err := Parse(data)
	if err != nil {
		return Snapshot{}, fmt.Errorf("parse diagnostics snapshot %s: %w", path, err)
	}
	return snapshot, nil
}

// Parse validates data against the snapshot schema and decodes it. Entries
// with unrecognized codes are kept; classification happens later and simply
// never matches them.
func Parse(data []byte) (Snapshot, error) {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(snapshotSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return Snapshot{}, fmt.Errorf("validate snapshot: %w", err)
	}
	if !result.Valid() {
		messages := make([]string, 0, len(result.Errors()))
		for _, item := range result.Errors() {
			messages = append(messages, item.String())
		}
		return Snapshot{}, fmt.Errorf("snapshot failed schema validation: %s", strings.Join(messages, "; "))
	}

	var file snapshotFile
	if err := json.Unmarshal(data, &file); err != nil {
		return Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}

	snapshot := Empty()
	for _, entry := range file.Diagnostics {
		key := normalizePath(entry.File)
		snapshot.byFile[key] = append(snapshot.byFile[key], Diagnostic{
			Code:   string(entry.Code),
			Source: entry.Source,
			Start:  entry.Range.Start,
			End:    entry.Range.End,
		})
	}
	return snapshot, nil
}

func normalizePath(path string) string {
	return filepath.ToSlash(filepath.Clean(strings.ReplaceAll(path, `\`, "/")))
}
