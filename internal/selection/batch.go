package selection

import (
	"fmt"

	"gymnarium/internal/catalog"
	"gymnarium/internal/compat"
)

// Request names one variant by any alias plus its raw option values.
type Request struct {
	Name   string
	Config map[string]string
}

// BatchRequest carries the four fully specified choices of a
// non-interactive run.
type BatchRequest struct {
	Environment   Request
	Agent         Request
	Visualiser    Request
	ExitCondition Request

	// AllowIncompatible skips the cross-category compatibility check.
	AllowIncompatible bool
}

// ResolveBatch resolves all four requests and, unless asked otherwise,
// rejects combinations the compatibility relation forbids.
func ResolveBatch(req BatchRequest) (Set, error) {
	var set Set

	envVariant, err := catalog.Lookup(catalog.CategoryEnvironment, req.Environment.Name)
	if err != nil {
		return Set{}, err
	}
	set.Environment, err = ResolveEnvironment(envVariant, req.Environment.Config)
	if err != nil {
		return Set{}, fmt.Errorf("environment %s: %w", envVariant.LongName, err)
	}

	agentVariant, err := catalog.Lookup(catalog.CategoryAgent, req.Agent.Name)
	if err != nil {
		return Set{}, err
	}
	set.Agent, err = ResolveAgent(agentVariant, req.Agent.Config)
	if err != nil {
		return Set{}, fmt.Errorf("agent %s: %w", agentVariant.LongName, err)
	}

	visVariant, err := catalog.Lookup(catalog.CategoryVisualiser, req.Visualiser.Name)
	if err != nil {
		return Set{}, err
	}
	set.Visualiser, err = ResolveVisualiser(visVariant, req.Visualiser.Config)
	if err != nil {
		return Set{}, fmt.Errorf("visualiser %s: %w", visVariant.LongName, err)
	}

	exitVariant, err := catalog.Lookup(catalog.CategoryExitCondition, req.ExitCondition.Name)
	if err != nil {
		return Set{}, err
	}
	set.ExitCondition, err = ResolveExitCondition(exitVariant, req.ExitCondition.Config)
	if err != nil {
		return Set{}, fmt.Errorf("exit condition %s: %w", exitVariant.LongName, err)
	}

	if !req.AllowIncompatible {
		if err := compat.Check(set.Variants()...); err != nil {
			return Set{}, err
		}
	}
	return set, nil
}
