package crawler

import "strings"

// Signature identifies one crawler by a User-Agent substring.
type Signature struct {
	// Name is the canonical crawler name reported in statistics.
	Name string `yaml:"name"`

	// Pattern is the literal, case-sensitive substring searched for in the User-Agent.
	Pattern string `yaml:"pattern"`
}

// DefaultSignatures returns the built-in crawler table in priority order.
// A fresh slice is returned on every call so callers may modify it.
func DefaultSignatures() []Signature {
	return []Signature{
		{Name: "Google", Pattern: "Googlebot"},
		{Name: "Bing", Pattern: "Bingbot"},
		{Name: "Baidu", Pattern: "Baiduspider"},
		{Name: "Yandex", Pattern: "YandexBot"},
	}
}

// Classifier maps User-Agent strings to crawler names.
// A Classifier is immutable after construction and safe for concurrent use.
type Classifier struct {
	signatures []Signature
}

// NewClassifier creates a Classifier over the given ordered signature table.
// The table is copied; later changes to signatures do not affect the Classifier.
// A nil or empty table yields a Classifier that never matches.
func NewClassifier(signatures []Signature) *Classifier {
	table := make([]Signature, len(signatures))
	copy(table, signatures)
	return &Classifier{signatures: table}
}

// Classify returns the name of the first signature whose pattern occurs in
// userAgent. The second return value is false when no signature matches.
func (c *Classifier) Classify(userAgent string) (string, bool) {
	for _, sig := range c.signatures {
		if strings.Contains(userAgent, sig.Pattern) {
			return sig.Name, true
		}
	}
	return "", false
}

// Names returns the crawler names in table order.
func (c *Classifier) Names() []string {
	names := make([]string, len(c.signatures))
	for i, sig := range c.signatures {
		names[i] = sig.Name
	}
	return names
}

// Signatures returns a copy of the signature table in priority order.
func (c *Classifier) Signatures() []Signature {
	table := make([]Signature, len(c.signatures))
	copy(table, c.signatures)
	return table
}
