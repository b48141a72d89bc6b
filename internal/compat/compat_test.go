package compat

import (
	"errors"
	"strings"
	"testing"

	"gymnarium/internal/catalog"
)

func TestRelationIsSymmetric(t *testing.T) {
	categories := catalog.Categories()
	for _, ca := range categories {
		for _, cb := range categories {
			if ca == cb {
				continue
			}
			for _, a := range catalog.Variants(ca) {
				for _, b := range catalog.Variants(cb) {
					if Compatible(a, b) != Compatible(b, a) {
						t.Fatalf("relation is asymmetric for %v and %v", a, b)
					}
					inSupported := contains(Supported(a, cb), b)
					inReverse := contains(Supported(b, ca), a)
					if inSupported != inReverse {
						t.Fatalf("Supported disagrees for %v and %v", a, b)
					}
					if inSupported != Compatible(a, b) {
						t.Fatalf("Supported and Compatible disagree for %v and %v", a, b)
					}
				}
			}
		}
	}
}

func TestInputAgentRequiresVisualiser(t *testing.T) {
	if Compatible(catalog.AgentInput, catalog.VisNone) {
		t.Fatal("input agent must not pair with the none visualiser")
	}
	if !Compatible(catalog.AgentInput, catalog.VisTerminalIn2D) {
		t.Fatal("input agent must pair with the terminal visualiser")
	}
	if !Compatible(catalog.AgentRandom, catalog.VisNone) {
		t.Fatal("random agent must pair with the none visualiser")
	}
}

func TestVisualiserClosedRequiresVisualiser(t *testing.T) {
	if Compatible(catalog.ExitVisualiserClosed, catalog.VisNone) {
		t.Fatal("visualiser_is_closed must not pair with the none visualiser")
	}
	if !Compatible(catalog.ExitVisualiserClosed, catalog.VisTerminalIn2D) {
		t.Fatal("visualiser_is_closed must pair with the terminal visualiser")
	}
}

func TestSameCategoryNeverCompatible(t *testing.T) {
	if Compatible(catalog.EnvGymMountainCar, catalog.EnvCodeBulletDrive) {
		t.Fatal("variants of the same category must not be compatible")
	}
	if Compatible(catalog.VisNone, catalog.VisNone) {
		t.Fatal("a variant must not be compatible with itself")
	}
}

func TestOffered(t *testing.T) {
	all := Offered(catalog.CategoryAgent)
	if len(all) != 2 {
		t.Fatalf("without prior choices both agents should be offered, got %v", all)
	}

	afterNone := Offered(catalog.CategoryAgent, catalog.VisNone)
	if len(afterNone) != 1 || afterNone[0] != catalog.AgentRandom {
		t.Fatalf("after choosing no visualiser only the random agent fits, got %v", afterNone)
	}

	exits := Offered(catalog.CategoryExitCondition, catalog.EnvGymMountainCar, catalog.VisNone, catalog.AgentRandom)
	if len(exits) != 1 || exits[0] != catalog.ExitEpisodesSimulated {
		t.Fatalf("headless runs can only exit on episode count, got %v", exits)
	}

	withTerminal := Offered(catalog.CategoryAgent, catalog.EnvCodeBulletDrive, catalog.VisTerminalIn2D)
	if len(withTerminal) != 2 {
		t.Fatalf("with a terminal visualiser both agents fit, got %v", withTerminal)
	}
}

func TestCheck(t *testing.T) {
	err := Check(catalog.EnvGymMountainCar, catalog.AgentRandom, catalog.VisNone, catalog.ExitEpisodesSimulated)
	if err != nil {
		t.Fatalf("valid combination rejected: %v", err)
	}

	err = Check(catalog.EnvGymMountainCar, catalog.AgentInput, catalog.VisNone, catalog.ExitEpisodesSimulated)
	var incompatible *IncompatibleError
	if !errors.As(err, &incompatible) {
		t.Fatalf("expected IncompatibleError, got %v", err)
	}
	if incompatible.A != catalog.AgentInput || incompatible.B != catalog.VisNone {
		t.Fatalf("unexpected pair in error: %+v", incompatible)
	}
	if !strings.Contains(err.Error(), "Input") || !strings.Contains(err.Error(), "None") {
		t.Fatalf("error should name both variants: %v", err)
	}
}

func contains(variants []catalog.Variant, v catalog.Variant) bool {
	for _, candidate := range variants {
		if candidate == v {
			return true
		}
	}
	return false
}
