package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"gymnarium/internal/runconfig"
	"gymnarium/pkg/gymnarium"
)

func newRunCmd(logger func() *slog.Logger) *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run one simulation non-interactively",
		Long: `Run resolves the four choices up front and fails before anything is
built when a name is unknown, an option does not parse or the
combination is not compatible. Variants are addressable by any of their
three names, case-insensitively; see "gymnariumctl list".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := runconfig.Load(configPath)
			if err != nil {
				return err
			}
			applyRunFlags(cmd, spec)

			client := gymnarium.New(gymnarium.Options{
				Logger:        logger(),
				VisualiserOut: os.Stdout,
				VisualiserIn:  os.Stdin,
			})
			report, err := client.Run(cmd.Context(), spec)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), report.String())
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&configPath, "config", "", "YAML run specification; flags override its values")
	flags.StringP("environment", "e", "", "environment to simulate (required unless set in --config)")
	flags.StringP("environment-configuration", "f", "", "environment options as key=value;key=value")
	flags.StringP("agent", "a", "random", "agent making the decisions")
	flags.StringP("agent-configuration", "b", "", "agent options as key=value;key=value")
	flags.StringP("visualiser", "v", "none", "visualiser to render with")
	flags.StringP("visualiser-configuration", "w", "", "visualiser options as key=value;key=value")
	flags.StringP("exit-condition", "x", "episodes_done_simulating", "condition that ends the run")
	flags.StringP("exit-condition-configuration", "y", "", "exit condition options as key=value;key=value")
	flags.StringP("seed", "s", "", "seed for the random number generators (default: randomly chosen)")
	flags.BoolP("not-reset-environment-on-done", "r", false, "keep the environment state when an episode is done")
	flags.BoolP("reset-agent-on-done", "q", false, "reset the agent when an episode is done")
	flags.StringP("environment-load-path", "j", "", "load the environment state from this file")
	flags.StringP("environment-store-path", "p", "", "store the environment state to this file")
	flags.StringP("agent-load-path", "i", "", "load the agent state from this file")
	flags.StringP("agent-store-path", "o", "", "store the agent state to this file")
	flags.Bool("allow-incompatible", false, "skip the cross-category compatibility check")

	return cmd
}

// applyRunFlags writes every flag the user actually set over the loaded
// spec, so the precedence stays defaults < file < environment < flags.
func applyRunFlags(cmd *cobra.Command, spec *runconfig.Spec) {
	flags := cmd.Flags()
	setString := func(name string, target *string) {
		if flags.Changed(name) {
			*target, _ = flags.GetString(name)
		}
	}

	setString("environment", &spec.Environment.Name)
	setString("environment-configuration", &spec.Environment.Configuration)
	setString("agent", &spec.Agent.Name)
	setString("agent-configuration", &spec.Agent.Configuration)
	setString("visualiser", &spec.Visualiser.Name)
	setString("visualiser-configuration", &spec.Visualiser.Configuration)
	setString("exit-condition", &spec.ExitCondition.Name)
	setString("exit-condition-configuration", &spec.ExitCondition.Configuration)
	setString("seed", &spec.Seed)
	setString("environment-load-path", &spec.EnvironmentLoadPath)
	setString("environment-store-path", &spec.EnvironmentStorePath)
	setString("agent-load-path", &spec.AgentLoadPath)
	setString("agent-store-path", &spec.AgentStorePath)

	if flags.Changed("not-reset-environment-on-done") {
		keep, _ := flags.GetBool("not-reset-environment-on-done")
		spec.ResetEnvironmentOnDone = !keep
	}
	if flags.Changed("reset-agent-on-done") {
		spec.ResetAgentOnDone, _ = flags.GetBool("reset-agent-on-done")
	}
	if flags.Changed("allow-incompatible") {
		spec.AllowIncompatible, _ = flags.GetBool("allow-incompatible")
	}
}
