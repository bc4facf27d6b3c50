package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/five82/pantry/internal/app"
)

// errDegraded makes check exit non-zero without printing an extra error.
var errDegraded = errors.New("backend degraded")

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errDegraded) {
			fmt.Fprintf(os.Stderr, "pantry: %v\n", err)
		}
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	var opts app.Options

	root := &cobra.Command{
		Use:   "pantry",
		Short: "Terminal dashboard for the recipe admin backend",
		Long: `pantry shows backend health, system resources and the recipe and
ingredient catalogs in the terminal. It keeps working while the backend is
down, showing fallback data until the backend answers again.

Configuration is read from ~/.config/pantry/config.toml. PANTRY_API_URL,
PANTRY_LOG_LEVEL and PANTRY_LOG_FILE override it, and may be set in a .env
file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.Run(cmd.Context(), opts)
		},
	}
	flags := root.PersistentFlags()
	flags.StringVar(&opts.ConfigPath, "config", "", "config file path (default ~/.config/pantry/config.toml)")
	flags.StringVar(&opts.PrefsPath, "prefs", "", "prefs file path (default ~/.config/pantry/prefs.toml)")
	flags.StringVar(&opts.EnvFile, "env-file", "", "load environment variables from this file")
	root.Flags().IntVar(&opts.PollEvery, "poll", 0, "system view refresh interval in seconds (5-300)")

	root.AddCommand(&cobra.Command{
		Use:   "check",
		Short: "Query the backend once and print a status report",
		Long:  `Reads every overview endpoint once and prints the outcome of each. Exits 1 when any read fell back or failed.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			degraded, err := app.Check(cmd.Context(), opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if degraded {
				return errDegraded
			}
			return nil
		},
	})

	var logOpts app.LogOptions
	logsCmd := &cobra.Command{
		Use:   "logs",
		Short: "Print the end of the pantry log file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.Logs(opts, logOpts, cmd.OutOrStdout())
		},
	}
	logsCmd.Flags().IntVarP(&logOpts.Lines, "lines", "n", 100, "number of lines to show")
	logsCmd.Flags().StringVar(&logOpts.Level, "level", "", "minimum level (debug, info, warn, error)")
	logsCmd.Flags().StringVar(&logOpts.Component, "component", "", "only lines from this component (api, reach, schedule, ...)")
	root.AddCommand(logsCmd)

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "pantry %s\n", app.Version)
			fmt.Fprintf(cmd.OutOrStdout(), "Go: %s\n", runtime.Version())
		},
	})

	return root
}
