package report

import (
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/nao1215/logstat/internal/model"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// SimpleWriter outputs human-readable text reports.
// This format is designed for terminal display with clear section formatting.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors so the output can be piped to files or other tools. Counts are
// grouped with thousands separators through golang.org/x/text/message.
type SimpleWriter struct {
	baseWriter

	// printer formats numbers for the configured language.
	printer *message.Printer
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithLanguage sets the language used for number formatting.
// The default is English, which groups digits as 1,234,567.
func WithLanguage(tag language.Tag) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.printer = message.NewPrinter(tag)
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
		printer:    message.NewPrinter(language.English),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the report of one log file in human-readable format.
func (w *SimpleWriter) Write(report *model.LogReport) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb)
	w.writeReport(&sb, report)
	w.writeFooter(&sb)

	return w.output.Write([]byte(sb.String()))
}

// WriteBatch outputs one block per log file in human-readable format.
func (w *SimpleWriter) WriteBatch(reports []model.FileReport) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb)
	for _, fr := range reports {
		w.printer.Fprintf(&sb, "File: %s\n\n", fr.File)
		w.writeReport(&sb, fr.Report)
	}
	w.writeFooter(&sb)

	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the report banner.
func (w *SimpleWriter) writeHeader(sb *strings.Builder) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("                        ACCESS LOG REPORT\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")
}

// writeReport writes the sections of one report.
func (w *SimpleWriter) writeReport(sb *strings.Builder, report *model.LogReport) {
	w.writeSummary(sb, report)
	w.writeStatusCodes(sb, report)
	w.writeCrawlers(sb, report)
}

// writeSummary writes the overall counters.
func (w *SimpleWriter) writeSummary(sb *strings.Builder, report *model.LogReport) {
	writeSection(sb, "SUMMARY")

	w.printer.Fprintf(sb, "  Views:         %d\n", report.Views)
	w.printer.Fprintf(sb, "  Distinct URLs: %d\n", report.URLs)
	w.printer.Fprintf(sb, "  Traffic (2xx): %d bytes (%s)\n",
		report.Traffic, humanize.IBytes(uint64(max(report.Traffic, 0))))
	sb.WriteString("\n")
}

// writeStatusCodes writes one line per observed status code.
func (w *SimpleWriter) writeStatusCodes(sb *strings.Builder, report *model.LogReport) {
	writeSection(sb, "STATUS CODES")

	if len(report.StatusCodes) == 0 {
		sb.WriteString("  No requests recorded\n\n")
		return
	}

	for _, code := range report.SortedStatusCodes() {
		count := report.StatusCodes[code]
		w.printer.Fprintf(sb, "  %d  %12d  %5.1f%%\n", code, count, percent(count, report.Views))
	}
	sb.WriteString("\n")
}

// writeCrawlers writes the crawler hit counts in name order.
func (w *SimpleWriter) writeCrawlers(sb *strings.Builder, report *model.LogReport) {
	writeSection(sb, "CRAWLERS")

	names := report.SortedCrawlers()
	if len(names) == 0 {
		sb.WriteString("  No crawlers configured\n\n")
		return
	}

	for _, name := range names {
		w.printer.Fprintf(sb, "  %-12s %12d\n", name, report.Crawlers[name])
	}
	sb.WriteString("\n")
}

// writeFooter writes the report footer.
func (w *SimpleWriter) writeFooter(sb *strings.Builder) {
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("Report generated by logstat\n")
	sb.WriteString("https://github.com/nao1215/logstat\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
}

// writeSection writes a section title framed by rules.
func writeSection(sb *strings.Builder, title string) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString(title)
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")
}
