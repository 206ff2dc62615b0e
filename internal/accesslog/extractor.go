package accesslog

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/nao1215/logstat/internal/model"
)

// DefaultAnchorOffset is the byte offset at which the search for the
// timestamp's closing bracket starts. It skips the client address and
// identity fields of a typical combined log line.
const DefaultAnchorOffset = 40

// requestPattern matches the fields following the timestamp:
// "METHOD PATH PROTO" STATUS BYTES "REFERRER" "USER_AGENT".
var requestPattern = regexp.MustCompile(`"\S+ (\S+) \S+" (\d+) (\d+) "[^"]+" "([^"]+)"`)

// Extractor turns raw access log lines into records.
// An Extractor holds no mutable state and is safe for concurrent use.
type Extractor struct {
	// anchorOffset is where the search for the timestamp bracket starts.
	anchorOffset int
}

// ExtractorOption configures an Extractor.
type ExtractorOption func(*Extractor)

// WithAnchorOffset sets the byte offset at which the timestamp bracket
// search starts. Negative values are ignored.
func WithAnchorOffset(offset int) ExtractorOption {
	return func(e *Extractor) {
		if offset >= 0 {
			e.anchorOffset = offset
		}
	}
}

// NewExtractor creates an Extractor with the given options.
func NewExtractor(opts ...ExtractorOption) *Extractor {
	e := &Extractor{
		anchorOffset: DefaultAnchorOffset,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// AnchorOffset returns the configured anchor offset.
func (e *Extractor) AnchorOffset() int {
	return e.anchorOffset
}

// Extract parses one log line.
// On failure it returns a *ParseError with Line left at zero; the caller
// fills it in when it tracks line numbers.
func (e *Extractor) Extract(line string) (model.AccessRecord, error) {
	start, ok := e.requestStart(line)
	if !ok {
		return model.AccessRecord{}, &ParseError{Text: line, Err: ErrNoTimestamp}
	}

	m := requestPattern.FindStringSubmatch(line[start:])
	if m == nil {
		return model.AccessRecord{}, &ParseError{Text: line, Err: ErrNoRequestFields}
	}

	status, err := strconv.Atoi(m[2])
	if err != nil {
		return model.AccessRecord{}, &ParseError{Text: line, Err: ErrNumberOutOfRange}
	}

	bytesSent, err := strconv.ParseInt(m[3], 10, 64)
	if err != nil {
		return model.AccessRecord{}, &ParseError{Text: line, Err: ErrNumberOutOfRange}
	}

	return model.AccessRecord{
		RequestPath: m[1],
		StatusCode:  status,
		BytesSent:   bytesSent,
		UserAgent:   m[4],
	}, nil
}

// requestStart returns the index two bytes past the first ']' at or after
// the anchor offset, which is where the request fields begin.
func (e *Extractor) requestStart(line string) (int, bool) {
	if e.anchorOffset >= len(line) {
		return 0, false
	}

	idx := strings.IndexByte(line[e.anchorOffset:], ']')
	if idx < 0 {
		return 0, false
	}

	start := e.anchorOffset + idx + 2
	if start > len(line) {
		return 0, false
	}
	return start, true
}
