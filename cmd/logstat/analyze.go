package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/nao1215/logstat/internal/accesslog"
	"github.com/nao1215/logstat/internal/config"
	"github.com/nao1215/logstat/internal/crawler"
	"github.com/nao1215/logstat/internal/database"
	"github.com/nao1215/logstat/internal/pipeline"
	"github.com/nao1215/logstat/internal/report"
	"github.com/spf13/cobra"
)

// NewAnalyzeCmd creates the analyze command.
func NewAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [file...]",
		Short: "Analyze access log files",
		Long: `Analyze reads one or more access logs in the combined log format and
writes aggregate statistics.

With no file argument, access.log in the current directory is analyzed.
One file produces a single JSON object; several files produce a JSON array
of {"file": ..., "report": ...} objects in argument order.

Examples:
  # Analyze access.log in the current directory
  logstat analyze

  # Analyze several files, two at a time
  logstat analyze -n 2 /var/log/nginx/access.log /var/log/nginx/access.log.1

  # Write a Markdown report
  logstat analyze --markdown -o report.md access.log

  # Keep distinct URLs on disk for very large logs
  logstat analyze --spill huge-access.log

Configuration file (.logstat) example:
  anchorOffset: 40
  concurrency: 4
  crawlers:
    - name: Google
      pattern: Googlebot
    - name: DuckDuckGo
      pattern: DuckDuckBot`,
		Args: cobra.ArbitraryArgs,
		RunE: runAnalyzeCmd,
	}

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .logstat in current or home directory)")

	// Parsing flags
	cmd.Flags().IntP("anchor-offset", "a", config.DefaultAnchorOffset,
		"Byte offset from which the closing timestamp bracket is searched")
	cmd.Flags().Int("max-line-size", config.DefaultMaxLineSize,
		"Maximum accepted line length in bytes")

	// Concurrency flags
	cmd.Flags().IntP("concurrency", "n", config.DefaultConcurrency,
		"Number of files analyzed concurrently")

	// Distinct URL storage flags
	cmd.Flags().Bool("spill", false,
		"Keep distinct URLs in a temporary SQLite file instead of memory")
	cmd.Flags().String("spill-dir", "",
		"Directory for temporary URL stores (default: XDG cache directory)")

	// Report flags
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --text)")
	cmd.Flags().BoolP("text", "t", false,
		"Output plain text report (mutually exclusive with --markdown)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")

	return cmd
}

// runAnalyzeCmd executes the analyze command.
func runAnalyzeCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cmd.ErrOrStderr(), cfg.Verbose, getBoolFlag(cmd, "log-json"))
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			logger.Warn("received shutdown signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
	}()

	return runAnalyze(ctx, cfg, logger, cmd.OutOrStdout())
}

// buildConfig creates a Config from the configuration file and cobra command flags.
// Flags given on the command line override values from the file.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	flags := cmd.Flags()

	configPath, err := flags.GetString("config")
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	cfg.Verbose = getVerboseFlag(cmd)

	if flags.Changed("anchor-offset") {
		if cfg.AnchorOffset, err = flags.GetInt("anchor-offset"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("max-line-size") {
		if cfg.MaxLineSize, err = flags.GetInt("max-line-size"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("concurrency") {
		if cfg.Concurrency, err = flags.GetInt("concurrency"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("spill-dir") {
		if cfg.SpillDir, err = flags.GetString("spill-dir"); err != nil {
			return nil, err
		}
	}

	if cfg.SpillToDisk, err = flags.GetBool("spill"); err != nil {
		return nil, err
	}
	if cfg.MarkdownReport, err = flags.GetBool("markdown"); err != nil {
		return nil, err
	}
	if cfg.TextReport, err = flags.GetBool("text"); err != nil {
		return nil, err
	}
	if cfg.ReportFile, err = flags.GetString("output"); err != nil {
		return nil, err
	}

	cfg.Files = args
	if len(cfg.Files) == 0 {
		cfg.Files = []string{config.DefaultLogFile}
	}

	return cfg, nil
}

// runAnalyze analyzes every configured file and writes the report.
// Nothing is written unless all files were analyzed successfully.
func runAnalyze(ctx context.Context, cfg *config.Config, logger *slog.Logger, stdout io.Writer) error {
	logger.Info("starting analysis",
		"files", cfg.Files,
		"concurrency", cfg.Concurrency,
		"spill", cfg.SpillToDisk,
	)

	newPipeline := newPipelineFactory(cfg, logger)

	if len(cfg.Files) == 1 {
		result, err := newPipeline().Run(ctx, cfg.Files[0])
		if err != nil {
			return err
		}
		return outputReport(cfg, stdout, func(w report.Writer) error {
			_, err := w.Write(result)
			return err
		})
	}

	bp := pipeline.NewBatchProcessor(newPipeline,
		pipeline.WithConcurrency(cfg.Concurrency),
		pipeline.WithBatchLogger(logger),
	)

	results, err := bp.ProcessBatch(ctx, cfg.Files)
	if err != nil {
		return err
	}
	return outputReport(cfg, stdout, func(w report.Writer) error {
		_, err := w.WriteBatch(results)
		return err
	})
}

// newPipelineFactory returns a factory building pipelines for cfg.
// The extractor and classifier are immutable and shared by all pipelines.
func newPipelineFactory(cfg *config.Config, logger *slog.Logger) func() *pipeline.Pipeline {
	extractor := accesslog.NewExtractor(accesslog.WithAnchorOffset(cfg.AnchorOffset))
	classifier := crawler.NewClassifier(cfg.Crawlers)

	opts := []pipeline.Option{
		pipeline.WithLogger(logger),
		pipeline.WithExtractor(extractor),
		pipeline.WithClassifier(classifier),
		pipeline.WithMaxLineSize(cfg.MaxLineSize),
	}
	if cfg.SpillToDisk {
		opts = append(opts, pipeline.WithURLSetFactory(
			database.NewURLSetFactory(cfg.SpillDir, database.DefaultOptions()),
		))
	}

	return func() *pipeline.Pipeline {
		return pipeline.New(opts...)
	}
}

// reportFormat returns the report format selected in cfg.
func reportFormat(cfg *config.Config) report.Format {
	switch {
	case cfg.MarkdownReport:
		return report.FormatMarkdown
	case cfg.TextReport:
		return report.FormatText
	default:
		return report.FormatJSON
	}
}

// outputReport opens the report destination and runs write with the selected writer.
func outputReport(cfg *config.Config, stdout io.Writer, write func(report.Writer) error) (err error) {
	output := stdout
	if cfg.ReportFile != "" {
		// Create directories if they don't exist
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		// Reports may reveal request paths, so only the owner may read them
		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("failed to close output file: %w", cerr)
			}
		}()
		output = f
	}

	if err := write(report.NewWriter(reportFormat(cfg), output)); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
