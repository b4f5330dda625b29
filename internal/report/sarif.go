package report

import (
	"encoding/json"
	"path/filepath"
)

const (
	sarifSchemaURI = "https://json.schemastore.org/sarif-2.1.0.json"
	sarifVersion   = "2.1.0"

	ruleUnorganized = "USORT0001"
	ruleRemovable   = "USORT0002"
	ruleFailed      = "USORT0003"
)

type sarifLog struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool    sarifTool     `json:"tool"`
	Results []sarifResult `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name           string      `json:"name"`
	InformationURI string      `json:"informationUri,omitempty"`
	Version        string      `json:"version,omitempty"`
	Rules          []sarifRule `json:"rules,omitempty"`
}

type sarifRule struct {
	ID               string       `json:"id"`
	Name             string       `json:"name,omitempty"`
	ShortDescription sarifMessage `json:"shortDescription"`
}

type sarifResult struct {
	RuleID    string          `json:"ruleId"`
	Level     string          `json:"level,omitempty"`
	Message   sarifMessage    `json:"message"`
	Locations []sarifLocation `json:"locations,omitempty"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysicalLocation `json:"physicalLocation"`
}

type sarifPhysicalLocation struct {
	ArtifactLocation sarifArtifactLocation `json:"artifactLocation"`
	Region           *sarifRegion          `json:"region,omitempty"`
}

type sarifArtifactLocation struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine int `json:"startLine,omitempty"`
}

func formatSARIF(report Report) (string, error) {
	rules := []sarifRule{
		{ID: ruleUnorganized, Name: "UnorganizedUsings", ShortDescription: sarifMessage{Text: "Using directives are not organized"}},
		{ID: ruleRemovable, Name: "RemovableUsing", ShortDescription: sarifMessage{Text: "Using directive is reported unused and can be removed"}},
		{ID: ruleFailed, Name: "OrganizeFailed", ShortDescription: sarifMessage{Text: "Organizing the file failed"}},
	}

	results := make([]sarifResult, 0)
	for _, file := range report.Files {
		uri := sarifURI(report.RepoPath, file.Path)
		switch file.Status {
		case "changed":
			results = append(results, sarifResult{
				RuleID:  ruleUnorganized,
				Level:   "note",
				Message: sarifMessage{Text: "using block is not in organized form"},
				Locations: []sarifLocation{{PhysicalLocation: sarifPhysicalLocation{
					ArtifactLocation: sarifArtifactLocation{URI: uri},
				}}},
			})
		case "failed":
			results = append(results, sarifResult{
				RuleID:  ruleFailed,
				Level:   "error",
				Message: sarifMessage{Text: file.Message},
				Locations: []sarifLocation{{PhysicalLocation: sarifPhysicalLocation{
					ArtifactLocation: sarifArtifactLocation{URI: uri},
				}}},
			})
		}
		for _, removed := range file.Removed {
			results = append(results, sarifResult{
				RuleID:  ruleRemovable,
				Level:   "warning",
				Message: sarifMessage{Text: "unused using directive: " + removed.Namespace},
				Locations: []sarifLocation{{PhysicalLocation: sarifPhysicalLocation{
					ArtifactLocation: sarifArtifactLocation{URI: uri},
					Region:           &sarifRegion{StartLine: removed.Line + 1},
				}}},
			})
		}
	}

	log := sarifLog{
		Schema:  sarifSchemaURI,
		Version: sarifVersion,
		Runs: []sarifRun{{
			Tool: sarifTool{Driver: sarifDriver{
				Name:    "usort",
				Version: SchemaVersion,
				Rules:   rules,
			}},
			Results: results,
		}},
	}

	payload, err := json.MarshalIndent(log, "", "  ")
	if err != nil {
		return "", err
	}
	return string(payload) + "\n", nil
}

func sarifURI(repoPath, filePath string) string {
	if repoPath != "" {
		if rel, err := filepath.Rel(repoPath, filePath); err == nil && filepath.IsLocal(rel) {
			return filepath.ToSlash(rel)
		}
	}
	return filepath.ToSlash(filePath)
}
