// Package accesslog reads access log files and extracts structured records
// from their lines.
//
// The supported layout is the combined log format:
//
//	203.0.113.9 - - [10/Oct/2024:13:55:36 +0000] "GET /a HTTP/1.1" 200 512 "-" "Mozilla/5.0"
//
// # Extraction
//
// Extractor does not parse the client address and identity fields. It looks
// for the closing bracket of the timestamp starting at a fixed offset into the
// line (40 bytes by default), then searches for the quoted request line,
// status, byte count, referrer and User-Agent after it. Anchoring past the
// timestamp keeps unusual characters in the leading fields from confusing the
// request pattern.
//
// # Errors
//
// A line that does not fit the layout yields a *ParseError carrying the line
// number and the raw text. A missing input file yields ErrFileNotFound.
// Neither is recoverable: callers abort the run instead of skipping lines.
package accesslog
