package httpx

import (
	"net/http"
	"testing"
	"time"
)

func TestSnippet(t *testing.T) {
	testCases := []struct {
		input    string
		max      int
		expected string
	}{
		{"short text", 100, "short text"},
		{"", 100, ""},
		{"  trimmed  ", 100, "trimmed"},
		{"long text that should be truncated", 10, "long text …"},
	}

	for _, tc := range testCases {
		result := snippet([]byte(tc.input), tc.max)
		if result != tc.expected {
			t.Errorf("snippet(%q, %d) = %q, want %q", tc.input, tc.max, result, tc.expected)
		}
	}
}

func TestHTTPError(t *testing.T) {
	err := &HTTPError{
		Method:     "GET",
		URL:        "https://example.com",
		StatusCode: 404,
		Body:       []byte("Not Found"),
	}

	expected := "http error: GET https://example.com status=404 body=Not Found"
	if err.Error() != expected {
		t.Errorf("HTTPError.Error() = %q, want %q", err.Error(), expected)
	}
	if err.RetryAfter() != 0 {
		t.Errorf("Expected no Retry-After without header, got %v", err.RetryAfter())
	}
}

const retryAfterHeader = "Retry-After"

func TestHTTPErrorRetryAfterFormats(t *testing.T) {
	header := http.Header{}
	err := &HTTPError{StatusCode: http.StatusTooManyRequests, Header: header}

	header.Set(retryAfterHeader, "30")
	if d := err.RetryAfter(); d != 30*time.Second {
		t.Errorf("Expected 30s, got %v", d)
	}

	// past date
	past := time.Now().Add(-60 * time.Second)
	header.Set(retryAfterHeader, past.UTC().Format(http.TimeFormat))
	if d := err.RetryAfter(); d != 0 {
		t.Errorf("Expected 0 for past date, got %v", d)
	}

	// future date
	future := time.Now().Add(90 * time.Second)
	header.Set(retryAfterHeader, future.UTC().Format(http.TimeFormat))
	if d := err.RetryAfter(); d <= 0 || d > 90*time.Second {
		t.Errorf("Expected a positive duration up to 90s, got %v", d)
	}

	header.Set(retryAfterHeader, "invalid")
	if d := err.RetryAfter(); d != 0 {
		t.Errorf("Expected 0 for invalid format, got %v", d)
	}

	header.Set(retryAfterHeader, "-3")
	if d := err.RetryAfter(); d != 0 {
		t.Errorf("Expected 0 for negative seconds, got %v", d)
	}

	var nilErr *HTTPError
	if d := nilErr.RetryAfter(); d != 0 {
		t.Errorf("Expected 0 for nil error, got %v", d)
	}
}
