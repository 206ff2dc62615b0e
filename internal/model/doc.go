// Package model defines the core data structures used throughout logstat.
//
// This package contains the following main types:
//   - AccessRecord: One parsed access log line
//   - LogReport: The aggregate statistics for one log file
//   - FileReport: A LogReport paired with the file it was computed from
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. The accesslog, stats, pipeline and report packages all need
// these types, so centralizing them prevents import cycles.
//
// LogReport is serialized to JSON with the exact field names consumers of the
// report rely on (views, urls, traffic, crawlers, statusCodes).
package model
