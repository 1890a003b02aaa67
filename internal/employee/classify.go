package employee

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/url"

	"employee-api/internal/apperr"
	"employee-api/internal/httpx"
)

// classify maps a raw transport failure to a domain error. Order matters:
// status-specific kinds win over the generic upstream and internal ones.
func classify(err error) *apperr.Error {
	if err == nil {
		return nil
	}
	if aerr, ok := apperr.As(err); ok {
		return aerr
	}

	var herr *httpx.HTTPError
	if errors.As(err, &herr) {
		switch herr.StatusCode {
		case http.StatusNotFound:
			return apperr.NotFound(err)
		case http.StatusTooManyRequests:
			return apperr.RateLimited(herr.RetryAfter(), err)
		default:
			return apperr.Upstream(herr.StatusCode, err)
		}
	}

	if noResponse(err) {
		return apperr.Internal(apperr.TagConnection, err)
	}
	return apperr.Internal(apperr.TagUnexpected, err)
}

// noResponse reports failures where a request was attempted and nothing
// usable came back from upstream. A *url.Error from parsing the target means
// no request was ever sent.
func noResponse(err error) bool {
	var uerr *url.Error
	if errors.As(err, &uerr) {
		return uerr.Op != "parse"
	}
	var nerr net.Error
	switch {
	case errors.As(err, &nerr):
		return true
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return true
	case errors.Is(err, io.ErrUnexpectedEOF):
		return true
	}
	return false
}
