package accesslog

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
)

// DefaultMaxLineSize is the longest line LineSource accepts, in bytes.
// Lines with very long query strings or User-Agents stay well below it.
const DefaultMaxLineSize = 1024 * 1024 // 1MiB

// initialBufferSize is the starting buffer size of the line scanner.
const initialBufferSize = 64 * 1024

const crlf = "\r\n"

// OpenFile opens an access log for reading.
// A path that does not exist yields an error wrapping ErrFileNotFound.
// The caller owns the returned file and must close it.
func OpenFile(path string) (*os.File, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory, not an access log file", path)
	}

	f, err := os.Open(path) //nolint:gosec // User-provided log path is intentional
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	return f, nil
}

// LineSource yields the lines of an input in order, without terminators.
// Both "\n" and "\r\n" terminators are accepted. A final line without a
// terminator is still returned. Empty lines are returned as empty strings.
type LineSource struct {
	scanner *bufio.Scanner

	// maxLineSize is the longest accepted line, terminator excluded.
	maxLineSize int

	// line is the number of lines returned so far.
	line int
}

// LineSourceOption configures a LineSource.
type LineSourceOption func(*lineSourceConfig)

// lineSourceConfig collects LineSource options before the scanner is built.
type lineSourceConfig struct {
	maxLineSize int
}

// WithMaxLineSize sets the longest accepted line in bytes, not counting the
// "\n" or "\r\n" terminator. Values that are not positive are ignored.
func WithMaxLineSize(size int) LineSourceOption {
	return func(c *lineSourceConfig) {
		if size > 0 {
			c.maxLineSize = size
		}
	}
}

// NewLineSource creates a LineSource reading from r.
func NewLineSource(r io.Reader, opts ...LineSourceOption) *LineSource {
	cfg := lineSourceConfig{maxLineSize: DefaultMaxLineSize}
	for _, opt := range opts {
		opt(&cfg)
	}

	// The scanner limit counts the terminator, so leave room for "\r\n"
	// and check the line length in Next.
	limit := cfg.maxLineSize
	if limit <= math.MaxInt-len(crlf) {
		limit += len(crlf)
	}
	bufSize := min(initialBufferSize, limit)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, bufSize), limit)

	return &LineSource{scanner: scanner, maxLineSize: cfg.maxLineSize}
}

// Next returns the next line. It returns io.EOF once the input is exhausted.
// A line longer than the maximum size yields an error wrapping bufio.ErrTooLong.
func (s *LineSource) Next() (string, error) {
	if s.scanner.Scan() {
		if len(s.scanner.Bytes()) > s.maxLineSize {
			return "", fmt.Errorf("line %d: %w", s.line+1, bufio.ErrTooLong)
		}
		s.line++
		return s.scanner.Text(), nil
	}

	if err := s.scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return "", fmt.Errorf("line %d: %w", s.line+1, err)
		}
		return "", fmt.Errorf("failed to read line %d: %w", s.line+1, err)
	}
	return "", io.EOF
}

// LineNumber returns the 1-based number of the line most recently returned
// by Next, or 0 before the first call.
func (s *LineSource) LineNumber() int {
	return s.line
}
