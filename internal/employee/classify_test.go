package employee

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"employee-api/internal/apperr"
	"employee-api/internal/httpx"
)

func httpErr(status int, header http.Header) error {
	return &httpx.HTTPError{Method: http.MethodGet, URL: "http://upstream/x", StatusCode: status, Header: header}
}

func TestClassifyPrecedence(t *testing.T) {
	retry := http.Header{}
	retry.Set("Retry-After", "3")

	cases := []struct {
		name   string
		err    error
		kind   apperr.Kind
		status int
		tag    string
	}{
		{"not found", httpErr(404, nil), apperr.KindNotFound, 404, ""},
		{"rate limited", httpErr(429, retry), apperr.KindRateLimited, 429, ""},
		{"server error", httpErr(500, nil), apperr.KindUpstream, 500, ""},
		{"bad request", httpErr(400, nil), apperr.KindUpstream, 400, ""},
		{"wrapped status", fmt.Errorf("ctx: %w", httpErr(404, nil)), apperr.KindNotFound, 404, ""},
		{"url error", &url.Error{Op: "Get", URL: "http://x", Err: errors.New("connection refused")}, apperr.KindInternal, 0, apperr.TagConnection},
		{"malformed url", &url.Error{Op: "parse", URL: "http://[::1", Err: errors.New("missing ']' in host")}, apperr.KindInternal, 0, apperr.TagUnexpected},
		{"deadline", context.DeadlineExceeded, apperr.KindInternal, 0, apperr.TagConnection},
		{"short read", io.ErrUnexpectedEOF, apperr.KindInternal, 0, apperr.TagConnection},
		{"anything else", errors.New("json parse error"), apperr.KindInternal, 0, apperr.TagUnexpected},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := classify(tc.err)
			assert.Equal(t, tc.kind, got.Kind)
			assert.Equal(t, tc.status, got.StatusCode)
			assert.Equal(t, tc.tag, got.Tag)
			assert.ErrorIs(t, got, tc.err)
		})
	}
}

func TestClassifyRateLimitedCarriesRetryAfter(t *testing.T) {
	h := http.Header{}
	h.Set("Retry-After", "3")
	assert.Equal(t, 3*time.Second, classify(httpErr(429, h)).RetryAfter)
}

func TestClassifyKeepsDomainErrors(t *testing.T) {
	nf := apperr.NotFound(nil)
	assert.Same(t, nf, classify(nf))
	assert.Nil(t, classify(nil))
}
