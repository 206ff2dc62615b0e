// Package main provides the entry point for the logstat CLI.
//
// logstat reads web server access logs in the combined log format and
// reports request counts, distinct URLs, successful traffic, status code
// counts and search engine crawler hits.
//
// Usage:
//
//	logstat analyze [file...]
//	logstat analyze --markdown -o report.md access.log
//
// See --help for all available options.
package main

// main is the entry point for logstat.
func main() {
	Execute()
}
