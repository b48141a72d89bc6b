package selection

import (
	"fmt"
	"strconv"
	"strings"

	"gymnarium/internal/catalog"
	"gymnarium/internal/compat"
)

// Prompter supplies the interactive answers. Implementations live
// outside this package so the pipeline never assumes a terminal.
type Prompter interface {
	// ChooseVariant presents the offered variants of one category and
	// returns the raw choice: an index into offered or any alias.
	// Excluded lists the variants removed by earlier choices.
	ChooseVariant(category catalog.Category, offered, excluded []catalog.Variant) (string, error)
	// AskOption prompts for one option value. An empty answer means
	// "use the default".
	AskOption(descriptor catalog.OptionDescriptor) (string, error)
	// Ask prompts for free text. Empty answers return def; noneHint is
	// shown to the user when def itself is empty.
	Ask(question, def, noneHint string) (string, error)
	// Confirm asks a yes/no question.
	Confirm(question string, def bool) (bool, error)
}

// Policy carries the run-level answers collected interactively.
type Policy struct {
	Seed                   string
	ResetEnvironmentOnDone bool
	ResetAgentOnDone       bool
	EnvironmentLoadPath    string
	EnvironmentStorePath   string
	AgentLoadPath          string
	AgentStorePath         string
}

// ResolveInteractive walks the fixed order environment, visualiser,
// agent, exit condition. Each step offers only the variants compatible
// with everything chosen so far, then prompts for the chosen variant's
// options and finally for the run policies.
func ResolveInteractive(p Prompter) (Set, Policy, error) {
	var set Set

	envVariant, envConfig, err := chooseAndConfigure(p, catalog.CategoryEnvironment)
	if err != nil {
		return Set{}, Policy{}, err
	}
	set.Environment, err = ResolveEnvironment(envVariant, envConfig)
	if err != nil {
		return Set{}, Policy{}, err
	}

	visVariant, visConfig, err := chooseAndConfigure(p, catalog.CategoryVisualiser, envVariant)
	if err != nil {
		return Set{}, Policy{}, err
	}
	set.Visualiser, err = ResolveVisualiser(visVariant, visConfig)
	if err != nil {
		return Set{}, Policy{}, err
	}

	agentVariant, agentConfig, err := chooseAndConfigure(p, catalog.CategoryAgent, envVariant, visVariant)
	if err != nil {
		return Set{}, Policy{}, err
	}
	set.Agent, err = ResolveAgent(agentVariant, agentConfig)
	if err != nil {
		return Set{}, Policy{}, err
	}

	exitVariant, exitConfig, err := chooseAndConfigure(p, catalog.CategoryExitCondition, envVariant, visVariant, agentVariant)
	if err != nil {
		return Set{}, Policy{}, err
	}
	set.ExitCondition, err = ResolveExitCondition(exitVariant, exitConfig)
	if err != nil {
		return Set{}, Policy{}, err
	}

	policy, err := askPolicy(p)
	if err != nil {
		return Set{}, Policy{}, err
	}
	return set, policy, nil
}

func chooseAndConfigure(p Prompter, c catalog.Category, chosen ...catalog.Variant) (catalog.Variant, map[string]string, error) {
	variant, err := chooseVariant(p, c, compat.Offered(c, chosen...))
	if err != nil {
		return catalog.Variant{}, nil, err
	}
	config, err := askOptions(p, variant)
	if err != nil {
		return catalog.Variant{}, nil, err
	}
	return variant, config, nil
}

func chooseVariant(p Prompter, c catalog.Category, offered []catalog.Variant) (catalog.Variant, error) {
	if len(offered) == 0 {
		return catalog.Variant{}, fmt.Errorf("no %s are compatible with the previous selections", c.Plural())
	}

	answer, err := p.ChooseVariant(c, offered, excludedFrom(c, offered))
	if err != nil {
		return catalog.Variant{}, err
	}

	trimmed := strings.TrimSpace(answer)
	if index, err := strconv.Atoi(trimmed); err == nil {
		if index < 0 || index >= len(offered) {
			return catalog.Variant{}, fmt.Errorf("choice %d is out of range", index)
		}
		return offered[index], nil
	}

	variant, err := catalog.Lookup(c, trimmed)
	if err != nil {
		return catalog.Variant{}, err
	}
	if !containsVariant(offered, variant) {
		return catalog.Variant{}, fmt.Errorf("%s %q is not compatible with the previous selections", c, variant.NiceName)
	}
	return variant, nil
}

func excludedFrom(c catalog.Category, offered []catalog.Variant) []catalog.Variant {
	var excluded []catalog.Variant
	for _, v := range catalog.Variants(c) {
		if !containsVariant(offered, v) {
			excluded = append(excluded, v)
		}
	}
	return excluded
}

func containsVariant(variants []catalog.Variant, v catalog.Variant) bool {
	for _, candidate := range variants {
		if candidate == v {
			return true
		}
	}
	return false
}

func askOptions(p Prompter, variant catalog.Variant) (map[string]string, error) {
	descriptors := variant.Options()
	if len(descriptors) == 0 {
		return nil, nil
	}
	config := make(map[string]string, len(descriptors))
	for _, d := range descriptors {
		answer, err := p.AskOption(d)
		if err != nil {
			return nil, err
		}
		if answer = strings.TrimSpace(answer); answer != "" {
			config[d.Name] = answer
		}
	}
	return config, nil
}

func askPolicy(p Prompter) (Policy, error) {
	var policy Policy
	var err error

	policy.ResetEnvironmentOnDone, err = p.Confirm("Should the ENVIRONMENT be reset when the environment is done after a step?", true)
	if err != nil {
		return Policy{}, err
	}
	policy.ResetAgentOnDone, err = p.Confirm("Should the AGENT be reset when the environment is done after a step?", false)
	if err != nil {
		return Policy{}, err
	}
	policy.Seed, err = p.Ask("Seed for the random number generator", "", "randomly chosen")
	if err != nil {
		return Policy{}, err
	}
	policy.EnvironmentLoadPath, err = p.Ask("From which file should the ENVIRONMENT be loaded?", "", "Do not load")
	if err != nil {
		return Policy{}, err
	}
	policy.AgentLoadPath, err = p.Ask("From which file should the AGENT be loaded?", "", "Do not load")
	if err != nil {
		return Policy{}, err
	}
	policy.EnvironmentStorePath, err = p.Ask("To which file should the ENVIRONMENT be stored?", policy.EnvironmentLoadPath, "Do not store")
	if err != nil {
		return Policy{}, err
	}
	policy.AgentStorePath, err = p.Ask("To which file should the AGENT be stored?", policy.AgentLoadPath, "Do not store")
	if err != nil {
		return Policy{}, err
	}
	return policy, nil
}
