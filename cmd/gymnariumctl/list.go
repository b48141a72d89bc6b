package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"gymnarium/pkg/gymnarium"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show every variant with its aliases, options and compatibilities",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			for i, category := range gymnarium.List() {
				if i > 0 {
					fmt.Fprintln(out)
				}
				fmt.Fprintln(out, category.Headline)
				for _, v := range category.Variants {
					fmt.Fprintf(out, "  %s (%s, %s)\n", v.NiceName, v.LongName, v.ShortName)
					for _, o := range v.Options {
						fmt.Fprintf(out, "    %s [%s; default: %s]\n", o.Name, o.Type, o.Default)
						fmt.Fprintf(out, "      %s\n", o.Description)
					}
					for _, other := range []string{"environment", "agent", "visualiser", "exit condition"} {
						supported, ok := v.Supports[other]
						if !ok {
							continue
						}
						fmt.Fprintf(out, "    supports %ss: %s\n", other, strings.Join(supported, ", "))
					}
				}
			}
		},
	}
}
