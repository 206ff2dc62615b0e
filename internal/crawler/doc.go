// Package crawler identifies search engine crawlers from User-Agent strings.
//
// # Signatures
//
// A Signature pairs a canonical crawler name with a literal substring that
// appears in that crawler's User-Agent header. The Classifier walks an ordered
// table of signatures and returns the name of the first one whose pattern
// occurs in the given User-Agent.
//
// Design decision: We use plain substring matching rather than regular
// expressions because:
//  1. Crawler identities are stable tokens such as "Googlebot"
//  2. Matching is case-sensitive and literal, so no escaping rules apply
//  3. It is called once per log line and must stay cheap
//
// # Priority
//
// When several signatures match the same User-Agent, the one listed first
// wins. The default table lists distinct bot names, so this rarely matters,
// but custom tables loaded from the configuration file keep the same rule.
//
// # Usage
//
//	c := crawler.NewClassifier(crawler.DefaultSignatures())
//	if name, ok := c.Classify(userAgent); ok {
//	    counts[name]++
//	}
package crawler
