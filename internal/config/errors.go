package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
// Callers use errors.Is() to tell them apart; messages that need the
// offending value wrap the sentinel with fmt.Errorf.
var (
	// ErrInvalidAnchorOffset is returned when the anchor offset is negative.
	// The offset is a byte position inside a log line, so zero is the smallest valid value.
	ErrInvalidAnchorOffset = errors.New("invalid anchor offset: must be non-negative")

	// ErrInvalidConcurrency is returned when the concurrency is not positive.
	// A concurrency of zero would mean no file is ever analyzed.
	ErrInvalidConcurrency = errors.New("invalid concurrency: must be positive")

	// ErrConflictingReportFormats is returned when both --markdown and --text
	// are specified. Only one output format can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --markdown and --text cannot be used together")

	// ErrNoCrawlers is returned when the configuration file declares an empty crawler table.
	// Omit the crawlers key entirely to use the built-in table.
	ErrNoCrawlers = errors.New("no crawlers configured: remove the crawlers key to use the built-in table")

	// ErrInvalidCrawler is returned when a crawler entry has an empty name or
	// pattern, or when two entries share a name.
	ErrInvalidCrawler = errors.New("invalid crawler signature")

	// ErrInvalidMaxLineSize is returned when the maximum line size is not positive.
	ErrInvalidMaxLineSize = errors.New("invalid max line size: must be positive")

	// ErrConfigNotFound is returned when the configuration file does not exist.
	ErrConfigNotFound = errors.New("configuration file not found")
)
