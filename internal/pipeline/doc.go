// Package pipeline drives the analysis of access log files.
//
// A Pipeline turns one log file into a report: it reads the file line by
// line, extracts a record from every line, folds the record into the
// statistics and finalizes the report once the file is exhausted. Lines of
// a file are processed strictly in order and the first malformed line
// aborts the run.
//
// A BatchProcessor runs one fresh Pipeline per file with bounded
// concurrency using errgroup. The first failing file cancels the others
// and no partial result is returned.
package pipeline
