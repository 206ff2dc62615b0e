package main

import (
	"fmt"
	"strconv"

	"github.com/nao1215/logstat/internal/config"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewCrawlersCmd creates the crawlers command.
func NewCrawlersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crawlers",
		Short: "Print the crawler signature table",
		Long: `Crawlers prints the crawler signatures used by analyze, in priority order.

A User-Agent is attributed to the first crawler whose pattern occurs in it
(case-sensitive). The table comes from the configuration file when it has a
crawlers key, and from the built-in table otherwise.`,
		Args: cobra.NoArgs,
		RunE: runCrawlersCmd,
	}

	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .logstat in current or home directory)")

	return cmd
}

// runCrawlersCmd executes the crawlers command.
func runCrawlersCmd(cmd *cobra.Command, _ []string) error {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return err
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.Header("Priority", "Name", "Pattern")
	for i, sig := range cfg.Crawlers {
		if err := table.Append([]string{strconv.Itoa(i + 1), sig.Name, sig.Pattern}); err != nil {
			return fmt.Errorf("failed to build crawler table: %w", err)
		}
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render crawler table: %w", err)
	}

	if cfg.ConfigFilePath != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "source: %s\n", cfg.ConfigFilePath)
	}
	return nil
}
