package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/nao1215/logstat/internal/model"
	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
)

// statusClasses lists the status classes in display order.
var statusClasses = []string{"1xx", "2xx", "3xx", "4xx", "5xx", "other"}

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides type-safe tables, mermaid charts and
// GitHub-flavored markdown alerts.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the report of one log file in Markdown format.
func (w *MarkdownWriter) Write(report *model.LogReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Access Log Report")
	md.PlainText("")
	w.writeReport(md, report, 2)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// WriteBatch outputs one section per log file in Markdown format.
func (w *MarkdownWriter) WriteBatch(reports []model.FileReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Access Log Report")
	md.PlainText("")

	if len(reports) == 0 {
		md.PlainText("No log files analyzed.")
		md.PlainText("")
	}

	for _, fr := range reports {
		md.H2("`" + fr.File + "`")
		md.PlainText("")
		w.writeReport(md, fr.Report, 3)
	}
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeReport writes all sections of one report, with section headings at level.
func (w *MarkdownWriter) writeReport(md *markdown.Markdown, report *model.LogReport, level int) {
	w.writeSummary(md, report, level)
	w.writeStatusCodes(md, report, level)
	w.writeCrawlers(md, report, level)
}

// writeSummary writes the overall counters.
func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, report *model.LogReport, level int) {
	heading(md, level, "Summary")

	md.Table(markdown.TableSet{
		Header: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Views", strconv.Itoa(report.Views)},
			{"Distinct URLs", strconv.Itoa(report.URLs)},
			{"Traffic (2xx)", fmt.Sprintf("%d bytes (%s)", report.Traffic, humanize.IBytes(uint64(max(report.Traffic, 0))))},
			{"Crawler hits", strconv.Itoa(report.CrawlerHits())},
		},
	})
	md.PlainText("")

	w.writeAlert(md, report)
}

// writeAlert writes an alert describing server errors, if any.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, report *model.LogReport) {
	serverErrors := report.StatusClassCounts()["5xx"]
	switch {
	case serverErrors > 0:
		md.Cautionf(
			"%d request(s) (%.1f%%) ended with a server error (5xx).",
			serverErrors, percent(serverErrors, report.Views),
		)
	case report.Views == 0:
		md.Note("The log contains no requests.")
	default:
		md.Tip("No server errors (5xx) recorded.")
	}
	md.PlainText("")
}

// writeStatusCodes writes the per-code table and the status class pie chart.
func (w *MarkdownWriter) writeStatusCodes(md *markdown.Markdown, report *model.LogReport, level int) {
	heading(md, level, "Status Codes")

	if len(report.StatusCodes) == 0 {
		md.PlainText("No status codes recorded.")
		md.PlainText("")
		return
	}

	codes := report.SortedStatusCodes()
	rows := make([][]string, len(codes))
	for i, code := range codes {
		count := report.StatusCodes[code]
		rows[i] = []string{
			strconv.Itoa(code),
			model.StatusClass(code),
			strconv.Itoa(count),
			fmt.Sprintf("%.1f%%", percent(count, report.Views)),
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"Status", "Class", "Count", "Share"},
		Rows:   rows,
	})
	md.PlainText("")

	w.writePieChart(md, report)
}

// writePieChart writes a mermaid pie chart for the status class distribution.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, report *model.LogReport) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Status Class Distribution"),
		piechart.WithShowData(true),
	)

	classes := report.StatusClassCounts()
	for _, class := range statusClasses {
		if count := classes[class]; count > 0 {
			chart.LabelAndIntValue(class, uint64(count))
		}
	}

	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeCrawlers writes the crawler hit table in name order.
func (w *MarkdownWriter) writeCrawlers(md *markdown.Markdown, report *model.LogReport, level int) {
	heading(md, level, "Crawlers")

	names := report.SortedCrawlers()
	if len(names) == 0 {
		md.PlainText("No crawlers configured.")
		md.PlainText("")
		return
	}

	rows := make([][]string, len(names))
	for i, name := range names {
		rows[i] = []string{name, strconv.Itoa(report.Crawlers[name])}
	}

	md.Table(markdown.TableSet{
		Header: []string{"Crawler", "Hits"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainText("*Report generated by [logstat](https://github.com/nao1215/logstat)*")
}

// heading writes a heading at level 2 or 3 followed by a blank line.
func heading(md *markdown.Markdown, level int, text string) {
	if level <= 2 {
		md.H2(text)
	} else {
		md.H3(text)
	}
	md.PlainText("")
}

// percent returns part as a percentage of total, or 0 when total is 0.
func percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) * 100 / float64(total)
}
