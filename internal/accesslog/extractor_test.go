package accesslog

import (
	"errors"
	"strings"
	"testing"

	"github.com/nao1215/logstat/internal/model"
)

// sampleLine is a combined log line whose timestamp bracket sits past byte 40.
const sampleLine = `192.168.100.123 - - [10/Oct/2024:13:55:36 +0000] "GET /index.html?q=1 HTTP/1.1" 200 5316 "https://example.com/" "Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)"`

// TestExtractorExtract tests successful extraction.
func TestExtractorExtract(t *testing.T) {
	t.Parallel()

	t.Run("extracts all fields", func(t *testing.T) {
		t.Parallel()

		rec, err := NewExtractor().Extract(sampleLine)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := model.AccessRecord{
			RequestPath: "/index.html?q=1",
			StatusCode:  200,
			BytesSent:   5316,
			UserAgent:   "Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)",
		}
		if rec != want {
			t.Errorf("unexpected record\n got: %+v\nwant: %+v", rec, want)
		}
	})

	t.Run("referrer content is ignored", func(t *testing.T) {
		t.Parallel()

		line := `10.0.0.200 user-identifier frank [10/Oct/2024:13:55:36 -0700] "POST /api/v1/items HTTP/2.0" 201 0 "-" "curl/8.4.0"`
		rec, err := NewExtractor().Extract(line)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rec.RequestPath != "/api/v1/items" {
			t.Errorf("expected path /api/v1/items, got %q", rec.RequestPath)
		}
		if rec.StatusCode != 201 {
			t.Errorf("expected status 201, got %d", rec.StatusCode)
		}
		if rec.BytesSent != 0 {
			t.Errorf("expected 0 bytes, got %d", rec.BytesSent)
		}
		if rec.UserAgent != "curl/8.4.0" {
			t.Errorf("expected curl user agent, got %q", rec.UserAgent)
		}
	})

	t.Run("brackets in leading fields before the anchor are skipped", func(t *testing.T) {
		t.Parallel()

		line := `[2001:db8::1] - - [10/Oct/2024:13:55:36 +0000] "GET /ipv6 HTTP/1.1" 404 12 "-" "Mozilla/5.0"`
		rec, err := NewExtractor().Extract(line)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rec.RequestPath != "/ipv6" {
			t.Errorf("expected path /ipv6, got %q", rec.RequestPath)
		}
		if rec.StatusCode != 404 {
			t.Errorf("expected status 404, got %d", rec.StatusCode)
		}
	})

	t.Run("trailing fields after the user agent are allowed", func(t *testing.T) {
		t.Parallel()

		rec, err := NewExtractor().Extract(sampleLine + ` 0.003 "upstream"`)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rec.StatusCode != 200 {
			t.Errorf("expected status 200, got %d", rec.StatusCode)
		}
	})
}

// TestExtractorErrors tests lines that must fail extraction.
func TestExtractorErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		line    string
		wantErr error
	}{
		{
			name:    "empty line",
			line:    "",
			wantErr: ErrNoTimestamp,
		},
		{
			name:    "line shorter than anchor offset",
			line:    `1.2.3.4 - - [x] "GET / HTTP/1.1"`,
			wantErr: ErrNoTimestamp,
		},
		{
			name:    "short client address puts bracket before the anchor",
			line:    `1.2.3.4 - - [10/Oct/2024:13:55:36 +0000] "GET /a HTTP/1.1" 200 5 "-" "Mozilla/5.0"`,
			wantErr: ErrNoTimestamp,
		},
		{
			name:    "no closing bracket",
			line:    strings.Repeat("x", 60),
			wantErr: ErrNoTimestamp,
		},
		{
			name:    "bracket is the last byte",
			line:    strings.Repeat("x", 45) + "]",
			wantErr: ErrNoTimestamp,
		},
		{
			name:    "dash instead of byte count",
			line:    `192.168.100.123 - - [10/Oct/2024:13:55:36 +0000] "GET /a HTTP/1.1" 304 - "-" "Mozilla/5.0"`,
			wantErr: ErrNoRequestFields,
		},
		{
			name:    "empty user agent",
			line:    `192.168.100.123 - - [10/Oct/2024:13:55:36 +0000] "GET /a HTTP/1.1" 200 10 "-" ""`,
			wantErr: ErrNoRequestFields,
		},
		{
			name:    "empty referrer",
			line:    `192.168.100.123 - - [10/Oct/2024:13:55:36 +0000] "GET /a HTTP/1.1" 200 10 "" "Mozilla/5.0"`,
			wantErr: ErrNoRequestFields,
		},
		{
			name:    "request line without protocol",
			line:    `192.168.100.123 - - [10/Oct/2024:13:55:36 +0000] "GET /a" 200 10 "-" "Mozilla/5.0"`,
			wantErr: ErrNoRequestFields,
		},
		{
			name:    "byte count overflows int64",
			line:    `192.168.100.123 - - [10/Oct/2024:13:55:36 +0000] "GET /a HTTP/1.1" 200 99999999999999999999 "-" "Mozilla/5.0"`,
			wantErr: ErrNumberOutOfRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewExtractor().Extract(tt.line)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}

			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("expected *ParseError, got %T", err)
			}
			if parseErr.Text != tt.line {
				t.Errorf("expected raw line in error, got %q", parseErr.Text)
			}
		})
	}
}

// TestWithAnchorOffset tests the configurable anchor offset.
func TestWithAnchorOffset(t *testing.T) {
	t.Parallel()

	shortLine := `1.2.3.4 - - [10/Oct/2024:13:55:36 +0000] "GET /a HTTP/1.1" 200 5 "-" "Mozilla/5.0"`

	t.Run("default is 40", func(t *testing.T) {
		t.Parallel()
		if got := NewExtractor().AnchorOffset(); got != 40 {
			t.Errorf("expected 40, got %d", got)
		}
	})

	t.Run("smaller offset accepts short client addresses", func(t *testing.T) {
		t.Parallel()

		rec, err := NewExtractor(WithAnchorOffset(0)).Extract(shortLine)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rec.RequestPath != "/a" {
			t.Errorf("expected path /a, got %q", rec.RequestPath)
		}
	})

	t.Run("negative offset is ignored", func(t *testing.T) {
		t.Parallel()
		if got := NewExtractor(WithAnchorOffset(-5)).AnchorOffset(); got != 40 {
			t.Errorf("expected 40, got %d", got)
		}
	})
}

// TestParseErrorMessage tests the diagnostic text.
func TestParseErrorMessage(t *testing.T) {
	t.Parallel()

	t.Run("with line number", func(t *testing.T) {
		t.Parallel()

		err := &ParseError{Line: 7, Text: "garbage", Err: ErrNoTimestamp}
		msg := err.Error()
		if !strings.Contains(msg, "line 7") {
			t.Errorf("expected line number in %q", msg)
		}
		if !strings.Contains(msg, `"garbage"`) {
			t.Errorf("expected raw line in %q", msg)
		}
	})

	t.Run("without line number", func(t *testing.T) {
		t.Parallel()

		err := &ParseError{Text: "garbage", Err: ErrNoRequestFields}
		if strings.Contains(err.Error(), "line 0") {
			t.Errorf("expected no line number in %q", err.Error())
		}
	})
}
