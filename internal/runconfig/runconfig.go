// Package runconfig loads the YAML run specification: the four component
// choices with their option strings plus the run policies. Values follow
// the precedence defaults < file < GYMNARIUM_* environment variables <
// command line flags (applied by the CLI).
package runconfig

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"gymnarium/internal/catalog"
	"gymnarium/internal/conf"
	"gymnarium/internal/selection"
)

// Component names one variant by any alias plus its raw option string in
// the key=value; grammar.
type Component struct {
	Name          string `yaml:"name"`
	Configuration string `yaml:"configuration,omitempty"`
}

// Spec is one complete run description.
type Spec struct {
	Environment   Component `yaml:"environment"`
	Agent         Component `yaml:"agent"`
	Visualiser    Component `yaml:"visualiser"`
	ExitCondition Component `yaml:"exit_condition"`

	// Seed feeds the random number generators; empty means a random seed.
	Seed string `yaml:"seed,omitempty"`

	ResetEnvironmentOnDone bool `yaml:"reset_environment_on_done"`
	ResetAgentOnDone       bool `yaml:"reset_agent_on_done"`

	EnvironmentLoadPath  string `yaml:"environment_load_path,omitempty"`
	EnvironmentStorePath string `yaml:"environment_store_path,omitempty"`
	AgentLoadPath        string `yaml:"agent_load_path,omitempty"`
	AgentStorePath       string `yaml:"agent_store_path,omitempty"`

	// AllowIncompatible skips the cross-category compatibility check on
	// the batch path.
	AllowIncompatible bool `yaml:"allow_incompatible,omitempty"`
}

// Default mirrors the CLI's flag defaults: a random agent, no visualiser,
// a twenty episode budget and environment resets on done.
func Default() *Spec {
	return &Spec{
		Agent:                  Component{Name: catalog.AgentRandom.LongName},
		Visualiser:             Component{Name: catalog.VisNone.LongName},
		ExitCondition:          Component{Name: catalog.ExitEpisodesSimulated.LongName},
		ResetEnvironmentOnDone: true,
	}
}

// Load reads path over the defaults and applies GYMNARIUM_* overrides.
// An empty path skips the file and still applies the overrides.
func Load(path string) (*Spec, error) {
	spec := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read run spec: %w", err)
		}
		if err := yaml.Unmarshal(data, spec); err != nil {
			return nil, fmt.Errorf("parse run spec %q: %w", path, err)
		}
	}
	spec.applyEnvOverrides()
	return spec, nil
}

func (s *Spec) applyEnvOverrides() {
	overrideString(&s.Environment.Name, "GYMNARIUM_ENVIRONMENT")
	overrideString(&s.Environment.Configuration, "GYMNARIUM_ENVIRONMENT_CONFIGURATION")
	overrideString(&s.Agent.Name, "GYMNARIUM_AGENT")
	overrideString(&s.Agent.Configuration, "GYMNARIUM_AGENT_CONFIGURATION")
	overrideString(&s.Visualiser.Name, "GYMNARIUM_VISUALISER")
	overrideString(&s.Visualiser.Configuration, "GYMNARIUM_VISUALISER_CONFIGURATION")
	overrideString(&s.ExitCondition.Name, "GYMNARIUM_EXIT_CONDITION")
	overrideString(&s.ExitCondition.Configuration, "GYMNARIUM_EXIT_CONDITION_CONFIGURATION")
	overrideString(&s.Seed, "GYMNARIUM_SEED")
	overrideString(&s.EnvironmentLoadPath, "GYMNARIUM_ENVIRONMENT_LOAD_PATH")
	overrideString(&s.EnvironmentStorePath, "GYMNARIUM_ENVIRONMENT_STORE_PATH")
	overrideString(&s.AgentLoadPath, "GYMNARIUM_AGENT_LOAD_PATH")
	overrideString(&s.AgentStorePath, "GYMNARIUM_AGENT_STORE_PATH")
	overrideBool(&s.ResetEnvironmentOnDone, "GYMNARIUM_RESET_ENVIRONMENT_ON_DONE")
	overrideBool(&s.ResetAgentOnDone, "GYMNARIUM_RESET_AGENT_ON_DONE")
	overrideBool(&s.AllowIncompatible, "GYMNARIUM_ALLOW_INCOMPATIBLE")
}

func overrideString(target *string, key string) {
	if v, ok := os.LookupEnv(key); ok {
		*target = v
	}
}

func overrideBool(target *bool, key string) {
	if v, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			*target = parsed
		}
	}
}

// Validate resolves every component name against the catalog so a broken
// spec fails before any component is built.
func (s *Spec) Validate() error {
	if s.Environment.Name == "" {
		return fmt.Errorf("run spec: an environment is required")
	}
	for _, check := range []struct {
		category catalog.Category
		name     string
	}{
		{catalog.CategoryEnvironment, s.Environment.Name},
		{catalog.CategoryAgent, s.Agent.Name},
		{catalog.CategoryVisualiser, s.Visualiser.Name},
		{catalog.CategoryExitCondition, s.ExitCondition.Name},
	} {
		if _, err := catalog.Lookup(check.category, check.name); err != nil {
			return fmt.Errorf("run spec: %w", err)
		}
	}
	return nil
}

// BatchRequest turns the spec into the batch selection request, parsing
// the option strings of all four components.
func (s *Spec) BatchRequest() selection.BatchRequest {
	return selection.BatchRequest{
		Environment:       selection.Request{Name: s.Environment.Name, Config: conf.ParseString(s.Environment.Configuration)},
		Agent:             selection.Request{Name: s.Agent.Name, Config: conf.ParseString(s.Agent.Configuration)},
		Visualiser:        selection.Request{Name: s.Visualiser.Name, Config: conf.ParseString(s.Visualiser.Configuration)},
		ExitCondition:     selection.Request{Name: s.ExitCondition.Name, Config: conf.ParseString(s.ExitCondition.Configuration)},
		AllowIncompatible: s.AllowIncompatible,
	}
}
