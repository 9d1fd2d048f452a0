package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/josephlewis42/nestsh/core/config"
	"github.com/josephlewis42/nestsh/core/interp"
	"github.com/josephlewis42/nestsh/core/logger"
	"github.com/josephlewis42/nestsh/core/proc"
	"github.com/josephlewis42/nestsh/core/shell"
)

var (
	cfgPath     string
	commandText string

	// exitStatus is the status of the last command the shell ran.
	exitStatus int
)

func loadConfig() (*config.Configuration, error) {
	return config.LoadOrDefault(cfgPath)
}

// defaultConfigDir is where configuration is read from without --config.
func defaultConfigDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "."
	}
	return filepath.Join(dir, "nestsh")
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "nestsh",
	Short: "A command interpreter for batches, pipelines, redirections and subshells.",
	Long: `nestsh reads command lines and runs them as a tree of processes.

It understands ";" to run commands in sequence, "|" to connect them with
pipes, "<", ">" and ">>" to redirect their input and output, and "( ... )"
to run a group in a subshell. cd and exit are built in.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		configuration, err := loadConfig()
		if err != nil {
			return err
		}

		in := interp.New(proc.Stdio{
			In:  cmd.InOrStdin(),
			Out: cmd.OutOrStdout(),
			Err: cmd.ErrOrStderr(),
		})

		closeEvents, err := startEventLog(configuration, in)
		if err != nil {
			return err
		}
		defer closeEvents()

		sh, err := shell.New(configuration, in)
		if err != nil {
			return err
		}

		if cmd.Flags().Changed("command") {
			exitStatus = sh.Eval(commandText)
			return nil
		}

		exitStatus, err = sh.Run()
		return err
	},
}

// startEventLog opens the configured event log, starts a session in it and
// exports the session so child interpreters log to it too.
func startEventLog(configuration *config.Configuration, in *interp.Interpreter) (func(), error) {
	path, err := configuration.EventLogPath()
	if err != nil {
		return nil, err
	}

	fd, err := configuration.OpenEventLog(afero.NewOsFs())
	if err != nil || fd == nil {
		return func() {}, err
	}

	session := logger.NewJsonLinesLogRecorder(fd).NewSession()
	session.Export(path)

	in.Events = session
	return func() { fd.Close() }, nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
	os.Exit(exitStatus)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", defaultConfigDir(), "config path")
	rootCmd.Flags().StringVarP(&commandText, "command", "c", "", "interpret the command text and exit")
}
