// Package compat holds the cross-category compatibility relation and
// answers which variant combinations may run together.
package compat

import (
	"fmt"

	"gymnarium/internal/catalog"
)

// edges lists every compatible cross-category variant pair exactly once.
// The relation is undirected; Compatible answers for both directions.
var edges = [][2]catalog.Variant{
	// Environment x Agent
	{catalog.EnvGymMountainCar, catalog.AgentRandom},
	{catalog.EnvGymMountainCar, catalog.AgentInput},
	{catalog.EnvCodeBulletDrive, catalog.AgentRandom},
	{catalog.EnvCodeBulletDrive, catalog.AgentInput},

	// Environment x Visualiser
	{catalog.EnvGymMountainCar, catalog.VisNone},
	{catalog.EnvGymMountainCar, catalog.VisTerminalIn2D},
	{catalog.EnvCodeBulletDrive, catalog.VisNone},
	{catalog.EnvCodeBulletDrive, catalog.VisTerminalIn2D},

	// Environment x ExitCondition
	{catalog.EnvGymMountainCar, catalog.ExitEpisodesSimulated},
	{catalog.EnvGymMountainCar, catalog.ExitVisualiserClosed},
	{catalog.EnvCodeBulletDrive, catalog.ExitEpisodesSimulated},
	{catalog.EnvCodeBulletDrive, catalog.ExitVisualiserClosed},

	// Agent x Visualiser. An input agent needs a visualiser to source
	// input events from.
	{catalog.AgentRandom, catalog.VisNone},
	{catalog.AgentRandom, catalog.VisTerminalIn2D},
	{catalog.AgentInput, catalog.VisTerminalIn2D},

	// Agent x ExitCondition
	{catalog.AgentRandom, catalog.ExitEpisodesSimulated},
	{catalog.AgentRandom, catalog.ExitVisualiserClosed},
	{catalog.AgentInput, catalog.ExitEpisodesSimulated},
	{catalog.AgentInput, catalog.ExitVisualiserClosed},

	// Visualiser x ExitCondition. Watching for a closed visualiser
	// requires one to be open in the first place.
	{catalog.VisNone, catalog.ExitEpisodesSimulated},
	{catalog.VisTerminalIn2D, catalog.ExitEpisodesSimulated},
	{catalog.VisTerminalIn2D, catalog.ExitVisualiserClosed},
}

var index = buildIndex()

func buildIndex() map[catalog.Variant]map[catalog.Variant]bool {
	m := make(map[catalog.Variant]map[catalog.Variant]bool)
	add := func(a, b catalog.Variant) {
		if m[a] == nil {
			m[a] = make(map[catalog.Variant]bool)
		}
		m[a][b] = true
	}
	for _, e := range edges {
		add(e[0], e[1])
		add(e[1], e[0])
	}
	return m
}

// Compatible reports whether the two variants may be combined in one run.
// Variants of the same category are never compatible.
func Compatible(a, b catalog.Variant) bool {
	return index[a][b]
}

// Supported returns the variants of category other that v can pair with, in
// catalog listing order.
func Supported(v catalog.Variant, other catalog.Category) []catalog.Variant {
	var out []catalog.Variant
	for _, candidate := range catalog.Variants(other) {
		if Compatible(v, candidate) {
			out = append(out, candidate)
		}
	}
	return out
}

// Offered returns the variants of category c compatible with every prior
// choice, in catalog listing order. With no prior choices the whole
// category is offered.
func Offered(c catalog.Category, chosen ...catalog.Variant) []catalog.Variant {
	var out []catalog.Variant
	for _, candidate := range catalog.Variants(c) {
		fits := true
		for _, prior := range chosen {
			if !Compatible(candidate, prior) {
				fits = false
				break
			}
		}
		if fits {
			out = append(out, candidate)
		}
	}
	return out
}

// IncompatibleError reports a combination the relation does not allow.
type IncompatibleError struct {
	A, B catalog.Variant
}

func (e *IncompatibleError) Error() string {
	return fmt.Sprintf("%s %q is not compatible with %s %q",
		e.A.Category, e.A.NiceName, e.B.Category, e.B.NiceName)
}

// Check validates every cross-category pair among the chosen variants and
// returns the first incompatibility. Pairs within the same category are not
// part of the relation and are skipped.
func Check(chosen ...catalog.Variant) error {
	for i := 0; i < len(chosen); i++ {
		for j := i + 1; j < len(chosen); j++ {
			if chosen[i].Category == chosen[j].Category {
				continue
			}
			if !Compatible(chosen[i], chosen[j]) {
				return &IncompatibleError{A: chosen[i], B: chosen[j]}
			}
		}
	}
	return nil
}
