// Command gymnariumctl runs simulations: pick an environment, an agent,
// an optional visualiser and an exit condition, either up front with
// flags or interactively, and drive them until the exit condition fires.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"gymnarium/internal/logging"
)

func main() {
	loadDotEnv()
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadDotEnv loads the first .env file found so GYMNARIUM_* overrides can
// live next to the project. A missing file is fine.
func loadDotEnv() {
	for _, candidate := range []string{".env", ".env.local"} {
		if _, err := os.Stat(candidate); err == nil {
			_ = godotenv.Load(candidate)
			return
		}
	}
}

func newRootCmd() *cobra.Command {
	var logLevel, logFormat string

	root := &cobra.Command{
		Use:   "gymnariumctl",
		Short: "Drive pluggable environment/agent simulations",
		Long: `gymnariumctl wires an environment, an agent, an optional visualiser and
an exit condition into one synchronous simulation run.

Use "run" when you know all four choices, "interactive" to be guided
through the compatible combinations, and "list" to see what there is.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (trace, debug, info, warn, error)")
	root.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format (text, json)")

	logger := func() *slog.Logger {
		return logging.New(logLevel, logFormat, os.Stderr)
	}

	root.AddCommand(
		newRunCmd(logger),
		newInteractiveCmd(logger),
		newListCmd(),
	)
	return root
}
