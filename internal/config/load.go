package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/codetidy/usort/internal/safeio"
)

const (
	readConfigFileErrFmt  = "read config file %s: %w"
	parseConfigFileErrFmt = "parse config file %s: %w"
)

var discoveryNames = []string{".usort.yml", ".usort.yaml", "usort.toml", "usort.json"}

type rawConfig struct {
	PrimaryNamespace              *string `yaml:"primary_namespace" json:"primary_namespace" toml:"primary_namespace"`
	SplitGroups                   *bool   `yaml:"split_groups" json:"split_groups" toml:"split_groups"`
	DisableUnusedRemoval          *bool   `yaml:"disable_unused_removal" json:"disable_unused_removal" toml:"disable_unused_removal"`
	ProcessConditionalRegions     *bool   `yaml:"process_conditional_regions" json:"process_conditional_regions" toml:"process_conditional_regions"`
	AliasPlacement                *string `yaml:"alias_placement" json:"alias_placement" toml:"alias_placement"`
	AllUnusedReliabilityThreshold *int    `yaml:"all_unused_reliability_threshold" json:"all_unused_reliability_threshold" toml:"all_unused_reliability_threshold"`
}

// Load resolves and parses the config file for repoPath. An explicit path
// must exist; without one the standard names are probed in order and a
// missing file simply yields empty overrides.
func Load(repoPath, explicitPath string) (Overrides, string, error) {
	repoAbs, err := filepath.Abs(repoPath)
	if err != nil {
		return Overrides{}, "", fmt.Errorf("resolve repo path: %w", err)
	}

	configPath, found, err := resolveConfigPath(repoAbs, strings.TrimSpace(explicitPath))
	if err != nil {
		return Overrides{}, "", err
	}
	if !found {
		return Overrides{}, "", nil
	}

	data, err := readConfigFile(repoAbs, configPath, explicitPath != "")
	if err != nil {
		return Overrides{}, "", fmt.Errorf(readConfigFileErrFmt, configPath, err)
	}

	raw, err := parseConfig(configPath, data)
	if err != nil {
		return Overrides{}, "", fmt.Errorf(parseConfigFileErrFmt, configPath, err)
	}

	overrides := raw.overrides()
	if err := overrides.Validate(); err != nil {
		return Overrides{}, "", fmt.Errorf(parseConfigFileErrFmt, configPath, err)
	}
	return overrides, configPath, nil
}

func resolveConfigPath(repoPath, explicitPath string) (string, bool, error) {
	if explicitPath != "" {
		candidate := explicitPath
		if !filepath.IsAbs(candidate) {
			candidate = filepath.Join(repoPath, candidate)
		}
		candidate = filepath.Clean(candidate)
		if _, err := os.Stat(candidate); err != nil {
			if os.IsNotExist(err) {
				return "", false, fmt.Errorf("config file not found: %s", candidate)
			}
			return "", false, fmt.Errorf(readConfigFileErrFmt, candidate, err)
		}
		return candidate, true, nil
	}

	for _, name := range discoveryNames {
		candidate := filepath.Join(repoPath, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !os.IsNotExist(err) {
			return "", false, fmt.Errorf(readConfigFileErrFmt, candidate, err)
		}
	}
	return "", false, nil
}

func readConfigFile(repoPath, path string, explicitProvided bool) ([]byte, error) {
	if !explicitProvided || isPathUnderRoot(repoPath, path) {
		return safeio.ReadFileUnder(repoPath, path)
	}
	return safeio.ReadFile(path)
}

func parseConfig(path string, data []byte) (rawConfig, error) {
	var cfg rawConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		decoder := json.NewDecoder(bytes.NewReader(data))
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return rawConfig{}, fmt.Errorf("invalid JSON config: %w", err)
		}
		if decoder.More() {
			return rawConfig{}, fmt.Errorf("invalid JSON config: multiple JSON values")
		}
	case ".toml":
		decoder := toml.NewDecoder(bytes.NewReader(data))
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return rawConfig{}, fmt.Errorf("invalid TOML config: %w", err)
		}
	default:
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		if err := decoder.Decode(&cfg); err != nil {
			return rawConfig{}, fmt.Errorf("invalid YAML config: %w", err)
		}
	}
	return cfg, nil
}

func (r rawConfig) overrides() Overrides {
	return Overrides{
		PrimaryNamespace:              r.PrimaryNamespace,
		SplitGroups:                   r.SplitGroups,
		DisableUnusedRemoval:          r.DisableUnusedRemoval,
		ProcessConditionalRegions:     r.ProcessConditionalRegions,
		AliasPlacement:                r.AliasPlacement,
		AllUnusedReliabilityThreshold: r.AllUnusedReliabilityThreshold,
	}
}

func isPathUnderRoot(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(os.PathSeparator))
}
