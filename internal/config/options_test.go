package config

import (
	"testing"

	"github.com/codetidy/usort/internal/sorting"
)

func TestDefaults(t *testing.T) {
	opts := Defaults()
	if opts.PrimaryNamespace != "System" {
		t.Fatalf("unexpected primary namespace %q", opts.PrimaryNamespace)
	}
	if !opts.SplitGroups {
		t.Fatal("split groups must default on")
	}
	if opts.DisableUnusedRemoval || opts.ProcessConditionalRegions {
		t.Fatal("removal toggles must default off")
	}
	if opts.AliasPlacement != sorting.AliasBottom {
		t.Fatalf("unexpected alias placement %q", opts.AliasPlacement)
	}
	if opts.AllUnusedReliabilityThreshold != 3 {
		t.Fatalf("unexpected threshold %d", opts.AllUnusedReliabilityThreshold)
	}
	if err := opts.Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
}

func TestOptionsValidate(t *testing.T) {
	opts := Defaults()
	opts.AllUnusedReliabilityThreshold = -1
	if err := opts.Validate(); err == nil {
		t.Fatal("expected a validation error for a negative threshold")
	}

	opts = Defaults()
	opts.AliasPlacement = sorting.AliasPlacement("sideways")
	if err := opts.Validate(); err == nil {
		t.Fatal("expected a validation error for an unknown placement")
	}
}

func TestOverridesApply(t *testing.T) {
	primary := "Company"
	split := false
	placement := "top"
	threshold := 10

	overrides := Overrides{
		PrimaryNamespace:              &primary,
		SplitGroups:                   &split,
		AliasPlacement:                &placement,
		AllUnusedReliabilityThreshold: &threshold,
	}
	opts := overrides.Apply(Defaults())

	if opts.PrimaryNamespace != "Company" {
		t.Fatalf("unexpected primary namespace %q", opts.PrimaryNamespace)
	}
	if opts.SplitGroups {
		t.Fatal("split groups override must stick")
	}
	if opts.AliasPlacement != sorting.AliasTop {
		t.Fatalf("unexpected alias placement %q", opts.AliasPlacement)
	}
	if opts.AllUnusedReliabilityThreshold != 10 {
		t.Fatalf("unexpected threshold %d", opts.AllUnusedReliabilityThreshold)
	}
	if opts.DisableUnusedRemoval {
		t.Fatal("untouched field must keep its default")
	}
}

func TestOverridesApplyEmpty(t *testing.T) {
	opts := Overrides{}.Apply(Defaults())
	if opts != Defaults() {
		t.Fatalf("empty overrides must keep defaults, got %+v", opts)
	}
}

func TestOverridesValidate(t *testing.T) {
	bad := "sideways"
	if err := (Overrides{AliasPlacement: &bad}).Validate(); err == nil {
		t.Fatal("expected a validation error for an unknown placement")
	}

	negative := -2
	if err := (Overrides{AllUnusedReliabilityThreshold: &negative}).Validate(); err == nil {
		t.Fatal("expected a validation error for a negative threshold")
	}

	if err := (Overrides{}).Validate(); err != nil {
		t.Fatalf("empty overrides must validate: %v", err)
	}
}
