package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/nao1215/logstat/internal/log"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for logstat.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logstat",
		Short: "Aggregate statistics from web server access logs",
		Long: `logstat reads web server access logs in the combined log format and
reports the number of requests, distinct URLs, traffic of successful
responses, per-status-code counts and search engine crawler hits.

The whole file is read before any result is written. A malformed line
aborts the run with the offending line number and content.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().Bool("log-json", false, "Write log messages as JSON")

	// Add subcommands
	cmd.AddCommand(NewAnalyzeCmd())
	cmd.AddCommand(NewCrawlersCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	return getBoolFlag(cmd, "verbose")
}

// getBoolFlag retrieves a boolean flag from the command or the root's persistent flags.
func getBoolFlag(cmd *cobra.Command, name string) bool {
	value, err := cmd.Flags().GetBool(name)
	if err != nil {
		value, err = cmd.Root().PersistentFlags().GetBool(name)
		if err != nil {
			return false
		}
	}
	return value
}

// setupLogger creates a structured logger that redacts secrets found in
// request paths and raw log lines.
func setupLogger(w io.Writer, verbose, jsonFormat bool) *slog.Logger {
	if jsonFormat {
		return log.NewSecureJSONLogger(w, verbose)
	}
	return log.NewSecureLogger(w, verbose)
}
