package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/devstart/devstart/internal/app"
	"github.com/devstart/devstart/internal/process"
	"github.com/spf13/cobra"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "devstart [flags]",
	Short: "Open the editor on a project, optionally bootstrapping git",
	Long: `devstart opens VS Code in a directory with a chosen profile and can
initialize a git repository there, or show its status and pull when one exists.

Run 'devstart --help' for the list of flags.`,
	Args:          cobra.ArbitraryArgs,
	SilenceErrors: true,
	SilenceUsage:  true,
	// Flags are parsed by internal/options so unknown tokens become
	// warnings instead of errors.
	DisableFlagParsing: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd, cwdErr := os.Getwd()
		a := &app.App{
			Runner:  process.Exec{},
			Stdout:  cmd.OutOrStdout(),
			Stderr:  cmd.ErrOrStderr(),
			Getenv:  os.Getenv,
			Version: version,
		}
		return a.Run(cmd.Context(), args, cwd, cwdErr)
	},
}

func Execute() {
	ctx, stop := notifyContext()
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "devstart: %s\n", err)
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	var exitErr *app.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return app.ExitFailure
}
