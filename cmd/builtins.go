package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/josephlewis42/nestsh/core/interp"
	"github.com/josephlewis42/nestsh/core/proc"
)

var builtinsCmd = &cobra.Command{
	Use:   "builtins",
	Short: "Show the builtin commands and child interpreter entry points.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var builtins []string

		for name := range interp.AllBuiltins {
			builtins = append(builtins, "shell:"+name)
		}

		for _, name := range proc.ChildNames() {
			builtins = append(builtins, "child:"+name)
		}

		sort.Strings(builtins)

		for _, v := range builtins {
			fmt.Fprintln(cmd.OutOrStdout(), v)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(builtinsCmd)
}
