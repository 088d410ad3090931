// Command quc runs the quantum-computation DSL interpreter over a
// source file, printing each statement's value next to the source line
// that produced it.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/m-marini/qucomp-go/internal/applog"
	"github.com/m-marini/qucomp-go/internal/cli"
	"github.com/m-marini/qucomp-go/internal/config"
)

var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	var cfg config.Config
	var showVersion bool
	exitCode := 0

	rootCmd := &cobra.Command{
		Use:           "quc",
		Short:         "Run a quantum-computation DSL source file",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				fmt.Fprintf(cmd.OutOrStdout(), "quc %s\n", version)
				return nil
			}
			logger := applog.New(cfg.Debug)
			exitCode = cli.Run(cfg, cmd.OutOrStdout(), cmd.ErrOrStderr(), logger)
			if exitCode != 0 {
				// The interpreter already wrote its own error; silence
				// cobra's own error line and just carry the exit code.
				cmd.SilenceErrors = true
				return errExit{}
			}
			return nil
		},
	}

	rootCmd.Flags().StringVarP(&cfg.File, "file", "f", config.DefaultFile, "Path to the source file (- for standard input)")
	rootCmd.Flags().BoolVarP(&cfg.Debug, "dump", "d", false, "Enable debug logging")
	rootCmd.Flags().BoolVarP(&showVersion, "version", "v", false, "Print the interpreter version and exit")

	if err := rootCmd.Execute(); err != nil {
		if _, ok := err.(errExit); ok {
			return exitCode
		}
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

// errExit signals that cli.Run already reported its own error; main
// only needs the exit code back out of cobra's Execute.
type errExit struct{}

func (errExit) Error() string { return "" }
