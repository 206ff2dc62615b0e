package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/nao1215/logstat/internal/accesslog"
	"github.com/nao1215/logstat/internal/crawler"
	"github.com/nao1215/logstat/internal/model"
	"github.com/nao1215/logstat/internal/stats"
)

// Pipeline analyzes access logs into reports.
// The extractor and classifier are immutable, and every run creates its own
// aggregator and URL set, so a Pipeline may be used for several runs.
type Pipeline struct {
	// extractor parses raw lines into records.
	extractor *accesslog.Extractor

	// classifier identifies crawlers by User-Agent.
	classifier *crawler.Classifier

	// newURLSet creates the distinct-URL set for each run.
	newURLSet stats.URLSetFactory

	// maxLineSize is the longest accepted line in bytes.
	maxLineSize int

	// logger is used for structured logging during execution.
	logger *slog.Logger
}

// Option is a function that configures a Pipeline.
// This follows the functional options pattern for clean API design.
type Option func(*Pipeline)

// WithLogger sets a custom logger for the pipeline.
// If not set, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// WithExtractor sets the record extractor.
// If not set, an extractor with the default anchor offset is used.
func WithExtractor(extractor *accesslog.Extractor) Option {
	return func(p *Pipeline) {
		if extractor != nil {
			p.extractor = extractor
		}
	}
}

// WithClassifier sets the crawler classifier.
// If not set, the built-in crawler table is used.
func WithClassifier(classifier *crawler.Classifier) Option {
	return func(p *Pipeline) {
		if classifier != nil {
			p.classifier = classifier
		}
	}
}

// WithURLSetFactory sets how the distinct-URL set of each run is created.
// If not set, an in-memory set is used.
func WithURLSetFactory(factory stats.URLSetFactory) Option {
	return func(p *Pipeline) {
		if factory != nil {
			p.newURLSet = factory
		}
	}
}

// WithMaxLineSize sets the longest accepted line in bytes.
// Values that are not positive are ignored.
func WithMaxLineSize(size int) Option {
	return func(p *Pipeline) {
		if size > 0 {
			p.maxLineSize = size
		}
	}
}

// New creates a new Pipeline with the given options.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		extractor:   accesslog.NewExtractor(),
		classifier:  crawler.NewClassifier(crawler.DefaultSignatures()),
		newURLSet:   stats.NewMemoryURLSetFactory(),
		maxLineSize: accesslog.DefaultMaxLineSize,
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.logger == nil {
		p.logger = slog.Default()
	}

	return p
}

// Run analyzes the access log at path and returns its report.
// A missing file yields an error wrapping accesslog.ErrFileNotFound before
// anything is read. Any other failure, including the first malformed line,
// aborts the run without a report.
func (p *Pipeline) Run(ctx context.Context, path string) (*model.LogReport, error) {
	f, err := accesslog.OpenFile(path)
	if err != nil {
		p.logger.Debug("cannot open access log", "file", path, "error", err)
		return nil, err
	}
	defer f.Close()

	report, err := p.Analyze(ctx, path, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return report, nil
}

// Analyze reads an access log from r and returns its report.
// name only labels log output. Context cancellation is checked between lines.
func (p *Pipeline) Analyze(ctx context.Context, name string, r io.Reader) (report *model.LogReport, err error) {
	startTime := time.Now()
	p.logger.Info("analyzing access log", "file", name)

	urls, err := p.newURLSet()
	if err != nil {
		return nil, fmt.Errorf("failed to create distinct URL set: %w", err)
	}
	defer func() {
		cerr := urls.Close()
		switch {
		case cerr == nil:
		case err == nil:
			report = nil
			err = fmt.Errorf("failed to release distinct URL set: %w", cerr)
		default:
			// err is what the caller sees; the release failure only shows up here
			p.logger.Warn("failed to release distinct URL set", "file", name, "error", cerr)
		}
	}()

	agg := stats.NewAggregator(p.classifier, urls)
	src := accesslog.NewLineSource(r, accesslog.WithMaxLineSize(p.maxLineSize))

	for {
		if err := ctx.Err(); err != nil {
			p.logger.Debug("analysis cancelled", "file", name, "line", src.LineNumber(), "reason", err)
			return nil, err
		}

		line, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			p.logger.Debug("failed to read access log", "file", name, "error", err)
			return nil, err
		}

		rec, err := p.extractor.Extract(line)
		if err != nil {
			var pe *accesslog.ParseError
			if errors.As(err, &pe) {
				pe.Line = src.LineNumber()
			}
			p.logger.Debug("malformed access log line", "file", name, "line", src.LineNumber(), "error", err)
			return nil, err
		}

		if err := agg.Fold(ctx, rec); err != nil {
			p.logger.Debug("failed to fold record", "file", name, "line", src.LineNumber(), "error", err)
			return nil, err
		}
	}

	report, err = agg.Finalize(ctx)
	if err != nil {
		p.logger.Debug("failed to finalize report", "file", name, "error", err)
		return nil, err
	}

	p.logger.Info("analysis complete",
		"file", name,
		"lines", src.LineNumber(),
		"urls", report.URLs,
		"elapsed", time.Since(startTime),
	)

	return report, nil
}
