package config

import (
	"fmt"

	"github.com/codetidy/usort/internal/sorting"
)

// Options is the immutable configuration snapshot for one organize run.
type Options struct {
	PrimaryNamespace          string
	SplitGroups               bool
	DisableUnusedRemoval      bool
	ProcessConditionalRegions bool
	AliasPlacement            sorting.AliasPlacement
	// AllUnusedReliabilityThreshold is the using count above which an
	// all-flagged-unused snapshot is treated as an analyzer still warming
	// up. Inherited from observed analyzer behavior; kept configurable
	// because it is a heuristic guard, not a correctness guarantee.
	AllUnusedReliabilityThreshold int
}

func Defaults() Options {
	return Options{
		PrimaryNamespace:              "System",
		SplitGroups:                   true,
		DisableUnusedRemoval:          false,
		ProcessConditionalRegions:     false,
		AliasPlacement:                sorting.AliasBottom,
		AllUnusedReliabilityThreshold: 3,
	}
}

func (o Options) Validate() error {
	if _, err := sorting.ParseAliasPlacement(string(o.AliasPlacement)); err != nil {
		return err
	}
	if o.AllUnusedReliabilityThreshold < 0 {
		return fmt.Errorf("all_unused_reliability_threshold must be >= 0, got %d", o.AllUnusedReliabilityThreshold)
	}
	return nil
}

// Overrides carries optional replacements for individual options. Nil fields
// leave the base value untouched, so config-file and CLI layers can stack.
type Overrides struct {
	PrimaryNamespace              *string
	SplitGroups                   *bool
	DisableUnusedRemoval          *bool
	ProcessConditionalRegions     *bool
	AliasPlacement                *string
	AllUnusedReliabilityThreshold *int
}

func (o Overrides) Apply(base Options) Options {
	result := base
	if o.PrimaryNamespace != nil {
		result.PrimaryNamespace = *o.PrimaryNamespace
	}
	if o.SplitGroups != nil {
		result.SplitGroups = *o.SplitGroups
	}
	if o.DisableUnusedRemoval != nil {
		result.DisableUnusedRemoval = *o.DisableUnusedRemoval
	}
	if o.ProcessConditionalRegions != nil {
		result.ProcessConditionalRegions = *o.ProcessConditionalRegions
	}
	if o.AliasPlacement != nil {
		if placement, err := sorting.ParseAliasPlacement(*o.AliasPlacement); err == nil {
			result.AliasPlacement = placement
		}
	}
	if o.AllUnusedReliabilityThreshold != nil {
		result.AllUnusedReliabilityThreshold = *o.AllUnusedReliabilityThreshold
	}
	return result
}

func (o Overrides) Validate() error {
	if o.AliasPlacement != nil {
		if _, err := sorting.ParseAliasPlacement(*o.AliasPlacement); err != nil {
			return err
		}
	}
	if o.AllUnusedReliabilityThreshold != nil && *o.AllUnusedReliabilityThreshold < 0 {
		return fmt.Errorf("all_unused_reliability_threshold must be >= 0, got %d", *o.AllUnusedReliabilityThreshold)
	}
	return nil
}
