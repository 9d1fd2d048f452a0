package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	"github.com/josephlewis42/nestsh/core/logger"
)

var eventLogPath string

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Explore the event log.",
}

var reportCommand = &cobra.Command{
	Use:   "report",
	Short: "Show a report of events.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		path := eventLogPath
		if path == "" {
			configuration, err := loadConfig()
			if err != nil {
				return err
			}
			if path, err = configuration.EventLogPath(); err != nil {
				return err
			}
		}
		if path == "" {
			return errors.New("no event log: set event_log in the configuration or pass --file")
		}

		fd, err := os.Open(path)
		if err != nil {
			return err
		}
		defer fd.Close()

		var report logger.Report
		if err := logger.ReadJSONLinesLog(fd, report.Update); err != nil {
			return err
		}

		out, err := yaml.Marshal(report)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), string(out))

		return nil
	},
}

func init() {
	rootCmd.AddCommand(eventsCmd)
	eventsCmd.AddCommand(reportCommand)
	reportCommand.Flags().StringVarP(&eventLogPath, "file", "f", "", "event log to read instead of the configured one")
}
