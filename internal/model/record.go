package model

// AccessRecord is one parsed access log line.
// A record is either fully populated or not produced at all; the extractor
// never hands out a partially filled record.
type AccessRecord struct {
	// RequestPath is the request target taken from the quoted request line.
	// It never contains whitespace.
	RequestPath string

	// StatusCode is the HTTP response status code.
	StatusCode int

	// BytesSent is the response body size in bytes.
	BytesSent int64

	// UserAgent is the raw User-Agent header value.
	UserAgent string
}
