// Package report provides report generation and output functionality.
//
// This package contains writers for different output formats:
//   - JSONWriter: Structured JSON output for tool integration (default)
//   - MarkdownWriter: GitHub Flavored Markdown with tables, alerts and a pie chart
//   - SimpleWriter: Human-readable text output for terminal display
//
// Design decision: We separate report writing from report data structures
// (which are in the model package). This allows adding new output formats
// without modifying the core data structures.
//
// Writers implement the Writer interface, allowing them to be used
// interchangeably. NewWriter selects one by Format.
package report
