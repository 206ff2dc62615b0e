package report

import (
	"fmt"
	"io"

	"github.com/nao1215/logstat/internal/model"
)

// Writer defines the interface for report output.
// Implementations write analysis results in various formats.
type Writer interface {
	// Write outputs the report of a single log file.
	// Returns the number of bytes written and any error encountered.
	Write(report *model.LogReport) (int, error)

	// WriteBatch outputs the reports of several log files in the given order.
	WriteBatch(reports []model.FileReport) (int, error)
}

// Format selects a report writer.
type Format int

const (
	// FormatJSON writes pretty-printed JSON.
	FormatJSON Format = iota
	// FormatMarkdown writes GitHub Flavored Markdown.
	FormatMarkdown
	// FormatText writes a plain text report for terminals.
	FormatText
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatMarkdown:
		return "markdown"
	case FormatText:
		return "text"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// NewWriter returns the Writer for format writing to output.
// Unknown formats fall back to JSON.
func NewWriter(format Format, output io.Writer) Writer {
	switch format {
	case FormatMarkdown:
		return NewMarkdownWriter(output)
	case FormatText:
		return NewSimpleWriter(output)
	default:
		return NewJSONWriter(output, WithPrettyPrint())
	}
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}
