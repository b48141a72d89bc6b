// Package gymnarium is the embedding surface of the harness: list what
// can be combined, resolve a run specification and execute it, without
// going through the CLI.
package gymnarium

import (
	"context"
	"io"
	"log/slog"

	"gymnarium/internal/catalog"
	"gymnarium/internal/compat"
	"gymnarium/internal/platform"
	"gymnarium/internal/run"
	"gymnarium/internal/runconfig"
	"gymnarium/internal/selection"
)

// Options configures a Client. The zero value runs headless visualisers
// against stdout and logs nowhere.
type Options struct {
	Logger *slog.Logger

	// VisualiserOut and VisualiserIn are the streams a terminal
	// visualiser renders to and reads key input from.
	VisualiserOut io.Writer
	VisualiserIn  io.Reader
}

// Client executes runs.
type Client struct {
	opts Options
}

func New(opts Options) *Client {
	return &Client{opts: opts}
}

// Run resolves and executes one run specification. It blocks until the
// exit condition fires, the context is cancelled or a component fails.
func (c *Client) Run(ctx context.Context, spec *runconfig.Spec) (run.Report, error) {
	if err := spec.Validate(); err != nil {
		return run.Report{}, err
	}
	set, err := selection.ResolveBatch(spec.BatchRequest())
	if err != nil {
		return run.Report{}, err
	}
	return c.RunSet(ctx, set, selection.Policy{
		Seed:                   spec.Seed,
		ResetEnvironmentOnDone: spec.ResetEnvironmentOnDone,
		ResetAgentOnDone:       spec.ResetAgentOnDone,
		EnvironmentLoadPath:    spec.EnvironmentLoadPath,
		EnvironmentStorePath:   spec.EnvironmentStorePath,
		AgentLoadPath:          spec.AgentLoadPath,
		AgentStorePath:         spec.AgentStorePath,
	})
}

// RunSet executes an already resolved selection quadruple under the given
// policy. The interactive front-end produces its inputs.
func (c *Client) RunSet(ctx context.Context, set selection.Set, policy selection.Policy) (run.Report, error) {
	assembly, err := platform.Assemble(set, platform.IO{Out: c.opts.VisualiserOut, In: c.opts.VisualiserIn})
	if err != nil {
		return run.Report{}, err
	}

	opts := run.Options{
		ResetEnvironmentOnDone: policy.ResetEnvironmentOnDone,
		ResetAgentOnDone:       policy.ResetAgentOnDone,
		EnvironmentLoadPath:    policy.EnvironmentLoadPath,
		EnvironmentStorePath:   policy.EnvironmentStorePath,
		AgentLoadPath:          policy.AgentLoadPath,
		AgentStorePath:         policy.AgentStorePath,
		Logger:                 c.opts.Logger,
	}
	if policy.Seed != "" {
		opts.Seed = run.SeedFromString(policy.Seed)
	}

	driver, err := run.NewDriver(assembly.Environment, assembly.Agent, assembly.Visualiser, assembly.Exit, opts)
	if err != nil {
		_ = assembly.Agent.Close()
		_ = assembly.Environment.Close()
		if assembly.Visualiser != nil {
			_ = assembly.Visualiser.Close()
		}
		return run.Report{}, err
	}
	return driver.Run(ctx)
}

// OptionInfo describes one configurable value of a variant.
type OptionInfo struct {
	Name        string
	Type        string
	Default     string
	Description string
}

// VariantInfo describes one selectable variant: its three aliases, its
// options and, per other category, the variants it can be combined with.
type VariantInfo struct {
	NiceName  string
	LongName  string
	ShortName string
	Options   []OptionInfo
	Supports  map[string][]string
}

// CategoryInfo is the full inventory of one category.
type CategoryInfo struct {
	Name     string
	Headline string
	Variants []VariantInfo
}

// List returns the complete capability inventory in catalog order.
func List() []CategoryInfo {
	var out []CategoryInfo
	for _, c := range catalog.Categories() {
		info := CategoryInfo{Name: c.String(), Headline: c.Headline()}
		for _, v := range catalog.Variants(c) {
			vi := VariantInfo{
				NiceName:  v.NiceName,
				LongName:  v.LongName,
				ShortName: v.ShortName,
				Supports:  make(map[string][]string),
			}
			for _, d := range v.Options() {
				vi.Options = append(vi.Options, OptionInfo{
					Name:        d.Name,
					Type:        d.Kind.String(),
					Default:     d.Default,
					Description: d.Description,
				})
			}
			for _, other := range catalog.Categories() {
				if other == c {
					continue
				}
				var names []string
				for _, supported := range compat.Supported(v, other) {
					names = append(names, supported.NiceName)
				}
				vi.Supports[other.String()] = names
			}
			info.Variants = append(info.Variants, vi)
		}
		out = append(out, info)
	}
	return out
}
