package model

import (
	"sort"
)

// Status code boundaries used for classification.
const (
	// SuccessMin is the first status code counted as successful (inclusive).
	SuccessMin = 200

	// SuccessMax is the first status code past the success range (exclusive).
	SuccessMax = 300
)

// LogReport holds the aggregate statistics of one access log.
//
// Design decision: StatusCodes is keyed by the integer code. encoding/json
// writes integer map keys as strings in sorted order, so two runs over the
// same input produce byte-identical documents.
type LogReport struct {
	// Views is the number of parsed lines.
	Views int `json:"views"`

	// URLs is the number of distinct request paths.
	URLs int `json:"urls"`

	// Traffic is the sum of bytes sent by responses in the success range.
	Traffic int64 `json:"traffic"`

	// Crawlers maps crawler names to hit counts.
	// Every known crawler is present, with zero when it never appeared.
	Crawlers map[string]int `json:"crawlers"`

	// StatusCodes maps observed status codes to their number of occurrences.
	StatusCodes map[int]int `json:"statusCodes"`
}

// NewLogReport creates an empty report whose crawler counts are pre-seeded
// with zero for every name in crawlerNames.
func NewLogReport(crawlerNames []string) *LogReport {
	crawlers := make(map[string]int, len(crawlerNames))
	for _, name := range crawlerNames {
		crawlers[name] = 0
	}
	return &LogReport{
		Crawlers:    crawlers,
		StatusCodes: make(map[int]int),
	}
}

// IsSuccess reports whether code lies in [SuccessMin, SuccessMax).
func IsSuccess(code int) bool {
	return code >= SuccessMin && code < SuccessMax
}

// StatusClass returns the class label of a status code, e.g. "2xx".
// Codes outside 100-599 are labeled "other".
func StatusClass(code int) string {
	if code < 100 || code > 599 {
		return "other"
	}
	return string(rune('0'+code/100)) + "xx"
}

// SortedStatusCodes returns the observed status codes in ascending order.
func (r *LogReport) SortedStatusCodes() []int {
	codes := make([]int, 0, len(r.StatusCodes))
	for code := range r.StatusCodes {
		codes = append(codes, code)
	}
	sort.Ints(codes)
	return codes
}

// SortedCrawlers returns the crawler names in ascending order.
func (r *LogReport) SortedCrawlers() []string {
	names := make([]string, 0, len(r.Crawlers))
	for name := range r.Crawlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// StatusClassCounts groups the status code counts by class.
func (r *LogReport) StatusClassCounts() map[string]int {
	classes := make(map[string]int)
	for code, count := range r.StatusCodes {
		classes[StatusClass(code)] += count
	}
	return classes
}

// CrawlerHits returns the total number of hits attributed to any crawler.
func (r *LogReport) CrawlerHits() int {
	total := 0
	for _, count := range r.Crawlers {
		total += count
	}
	return total
}

// FileReport pairs a report with the log file it was computed from.
// It is the element type of multi-file output.
type FileReport struct {
	// File is the path of the analyzed log file, as given on the command line.
	File string `json:"file"`

	// Report is the aggregate statistics of File.
	Report *LogReport `json:"report"`
}
