// Package database provides SQLite-based scratch storage for logstat.
//
// This package implements URLStore, a disk-backed set of distinct request
// paths. It is used instead of the in-memory set when a log has more distinct
// paths than comfortably fit in memory (the --spill flag).
//
// Design decision: We use SQLite (via modernc.org/sqlite) because:
// 1. No external dependencies - the store is a single file
// 2. CGO-free implementation allows easy cross-compilation
// 3. A primary-key table gives set semantics with INSERT OR IGNORE
//
// A URLStore lives for exactly one log file. Its database file is created in
// the spill directory when the store is opened and removed when it is closed,
// so nothing is carried over between runs.
package database
