package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	"github.com/josephlewis42/nestsh/core/syntax"
)

var parseOutput string

// parseCmd shows how command text would be interpreted.
var parseCmd = &cobra.Command{
	Use:   "parse TEXT...",
	Short: "Print how a command line would be interpreted, without running it.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		tree, parseErr := syntax.Parse(strings.Join(args, " "))

		switch parseOutput {
		case "text":
			if err := tree.Format(cmd.OutOrStdout()); err != nil {
				return err
			}
		case "yaml":
			out, err := yaml.Marshal(tree)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), string(out))
		default:
			return fmt.Errorf("unknown output format %q", parseOutput)
		}

		return parseErr
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().StringVarP(&parseOutput, "output", "o", "text", "output format: text or yaml")
}
