// Package stats folds access records into aggregate statistics.
//
// An Aggregator starts in the accumulating state. Each Fold adds one record
// to the running counters and to a distinct-URL set. Finalize computes the
// distinct URL count, moves the Aggregator to the finalized state and returns
// the report; after that every Fold and Finalize call fails with ErrFinalized.
//
// The distinct-URL set is pluggable through the URLSet interface. The default
// MemoryURLSet keeps paths in a map; the database package provides a SQLite
// backed set for logs whose distinct paths do not fit in memory.
//
// An Aggregator is not safe for concurrent use. Lines of one log are folded
// strictly in input order.
package stats
