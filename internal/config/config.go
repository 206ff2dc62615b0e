package config

import (
	"fmt"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/nao1215/logstat/internal/crawler"
)

// Default configuration values.
const (
	// DefaultLogFile is analyzed when no file argument is given.
	DefaultLogFile = "access.log"

	// DefaultAnchorOffset is the byte offset from which the closing bracket of
	// the timestamp is searched. The remote address, identity, user and the
	// opening of the timestamp of a combined log line never end before it.
	DefaultAnchorOffset = 40

	// DefaultConcurrency is the number of files analyzed at the same time.
	// Lines of a single file are always processed sequentially.
	DefaultConcurrency = 4

	// DefaultMaxLineSize limits the length of one log line in bytes.
	// Lines longer than this abort the run instead of exhausting memory.
	DefaultMaxLineSize = 1024 * 1024 // 1MB

	// AppName is the application name used for XDG directory paths.
	AppName = "logstat"
)

// Config holds all configuration options for logstat.
// This struct is populated from the configuration file and CLI flags and is
// passed through the application rather than kept in global state.
//
// Design decision: We use a single flat struct. The number of options is
// small and every option is consumed by the analyze command.
type Config struct {
	// Files is the list of access log files to analyze, in output order.
	Files []string

	// AnchorOffset is the byte offset at which the search for the closing
	// timestamp bracket starts.
	AnchorOffset int

	// Crawlers is the ordered crawler signature table.
	// The first signature whose pattern occurs in a User-Agent wins.
	Crawlers []crawler.Signature

	// Concurrency is the number of files analyzed concurrently.
	Concurrency int

	// MaxLineSize is the maximum accepted length of a single log line in bytes.
	MaxLineSize int

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// MarkdownReport enables Markdown report output instead of JSON.
	// Mutually exclusive with TextReport.
	MarkdownReport bool

	// TextReport enables the human-readable plain text report instead of JSON.
	// Mutually exclusive with MarkdownReport.
	TextReport bool

	// ReportFile is the output file path for the report.
	// When set, the report is written to this file instead of stdout.
	// Directories are created automatically if they don't exist.
	ReportFile string

	// SpillToDisk keeps the distinct-URL set in a temporary SQLite file
	// instead of memory. Useful for logs with a very large number of paths.
	SpillToDisk bool

	// SpillDir is the directory in which temporary URL stores are created.
	// Defaults to the XDG cache directory (~/.cache/logstat on Linux).
	SpillDir string

	// ConfigFilePath is the path to the configuration file.
	// If empty, FindConfigFile searches the default locations.
	ConfigFilePath string
}

// NewConfig creates a new Config with default values.
// All fields are set to values that work for a standard combined log format.
// Users can override specific values after creation.
func NewConfig() *Config {
	return &Config{
		AnchorOffset: DefaultAnchorOffset,
		Crawlers:     crawler.DefaultSignatures(),
		Concurrency:  DefaultConcurrency,
		MaxLineSize:  DefaultMaxLineSize,
		SpillDir:     XDGCacheDir(),
	}
}

// ApplyFile copies the values present in the configuration file into c.
// Keys missing from the file leave the current values untouched.
func (c *Config) ApplyFile(f *File) {
	if f == nil {
		return
	}
	if f.AnchorOffset != nil {
		c.AnchorOffset = *f.AnchorOffset
	}
	if f.Concurrency != nil {
		c.Concurrency = *f.Concurrency
	}
	if f.MaxLineSize != nil {
		c.MaxLineSize = *f.MaxLineSize
	}
	if f.Crawlers != nil {
		c.Crawlers = append([]crawler.Signature(nil), f.Crawlers...)
	}
	if f.SpillDir != "" {
		c.SpillDir = f.SpillDir
	}
}

// XDGConfigDir returns the XDG config directory for logstat.
// On Linux: ~/.config/logstat
// On macOS: ~/Library/Application Support/logstat
// On Windows: %APPDATA%\logstat
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// XDGCacheDir returns the XDG cache directory for logstat.
// On Linux: ~/.cache/logstat
// On macOS: ~/Library/Caches/logstat
// On Windows: %LOCALAPPDATA%\logstat\cache
func XDGCacheDir() string {
	return filepath.Join(xdg.CacheHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns the first problem found as a sentinel error, possibly wrapped
// with the offending value.
//
// Design decision: We validate once after flags and the configuration file
// have been merged, before any file is opened, so a bad option never leaves
// a half-written report behind.
func (c *Config) Validate() error {
	if c.AnchorOffset < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidAnchorOffset, c.AnchorOffset)
	}

	if c.Concurrency <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidConcurrency, c.Concurrency)
	}

	if c.MaxLineSize <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidMaxLineSize, c.MaxLineSize)
	}

	if c.MarkdownReport && c.TextReport {
		return ErrConflictingReportFormats
	}

	return validateCrawlers(c.Crawlers)
}

// validateCrawlers checks the crawler table for empty and duplicate entries.
func validateCrawlers(signatures []crawler.Signature) error {
	if len(signatures) == 0 {
		return ErrNoCrawlers
	}

	seen := make(map[string]bool, len(signatures))
	for i, sig := range signatures {
		if sig.Name == "" {
			return fmt.Errorf("%w: entry %d has an empty name", ErrInvalidCrawler, i+1)
		}
		if sig.Pattern == "" {
			return fmt.Errorf("%w: %q has an empty pattern", ErrInvalidCrawler, sig.Name)
		}
		if seen[sig.Name] {
			return fmt.Errorf("%w: duplicate name %q", ErrInvalidCrawler, sig.Name)
		}
		seen[sig.Name] = true
	}
	return nil
}
