package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"gymnarium/internal/prompt"
	"gymnarium/internal/selection"
	"gymnarium/pkg/gymnarium"
)

func newInteractiveCmd(logger func() *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "interactive",
		Short: "Pick the run configuration step by step",
		Long: `Interactive walks through environment, visualiser, agent and exit
condition in that order. Each step only offers the variants compatible
with everything chosen before; options and run policies are prompted
with their defaults.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fd := os.Stdin.Fd()
			if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
				return fmt.Errorf("interactive mode needs a terminal; use \"gymnariumctl run\" instead")
			}

			set, policy, err := selection.ResolveInteractive(&prompt.Terminal{Out: cmd.OutOrStdout()})
			if err != nil {
				return err
			}

			client := gymnarium.New(gymnarium.Options{
				Logger:        logger(),
				VisualiserOut: os.Stdout,
				VisualiserIn:  os.Stdin,
			})
			report, err := client.RunSet(cmd.Context(), set, policy)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), report.String())
			return nil
		},
	}
}
