// Package upstream is the transport client for the upstream employee
// service. It performs one call per invocation, unwraps the response
// envelope and hands failures back untouched: classification is the
// caller's job.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"employee-api/internal/httpx"
	"employee-api/internal/logger"
)

const (
	contentTypeJSON = "application/json"
	acceptJSON      = contentTypeJSON
)

// Relative paths understood by the upstream service.
const (
	PathCollection = ""
	PathByID       = "/{id}"
)

// ErrPathArgs is returned when pathArgs do not match the template placeholders.
var ErrPathArgs = errors.New("upstream: path arguments do not match template")

// Envelope is the uniform wrapper of every upstream response.
// Unknown fields are ignored by encoding/json.
type Envelope[T any] struct {
	Data   *T     `json:"data"`
	Status string `json:"status"`
}

type Client struct {
	BaseURL string
	HTTP    httpx.Doer
	Log     *logger.Logger
}

func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	tr := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP: &http.Client{
			Timeout:   timeout,
			Transport: tr,
		},
		Log: logger.Nop(),
	}
}

// Call issues method against path (relative to BaseURL), substituting each
// {placeholder} in path with the next pathArgs value, sending body as JSON
// when non-nil. It returns the envelope's data, or nil when the response is
// empty or carries no data.
//
// Errors are returned as produced by the transport: *httpx.HTTPError for
// non-2xx answers, the net/url error for connection failures.
func Call[T any](ctx context.Context, c *Client, method, path string, pathArgs []string, body any) (*T, error) {
	rel, err := expandPath(path, pathArgs)
	if err != nil {
		return nil, err
	}
	target := c.BaseURL + rel

	var payload []byte
	if body != nil {
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("upstream: encode %s body: %w", method, err)
		}
	}

	start := time.Now()
	resp, raw, err := httpx.Do(ctx, c.HTTP, func(ctx context.Context) (*http.Request, error) {
		var rdr io.Reader
		if payload != nil {
			rdr = bytes.NewReader(payload)
		}
		r, err := http.NewRequestWithContext(ctx, method, target, rdr)
		if err != nil {
			return nil, err
		}
		if payload != nil {
			r.Header.Set("Content-Type", contentTypeJSON)
		}
		r.Header.Set("Accept", acceptJSON)
		return r, nil
	})
	c.logCall(method, target, resp, start)
	if err != nil {
		return nil, err
	}

	var env Envelope[T]
	if err := httpx.DecodeJSON(raw, &env); err != nil {
		return nil, fmt.Errorf("upstream: decode %s %s: %w", method, target, err)
	}
	return env.Data, nil
}

func (c *Client) logCall(method, target string, resp *http.Response, start time.Time) {
	if c.Log == nil {
		return
	}
	status := 0
	if resp != nil {
		status = resp.StatusCode
	}
	c.Log.Debug("upstream call",
		"method", method,
		"url", target,
		"status", status,
		"elapsed", time.Since(start).String(),
	)
}

// expandPath replaces {name} placeholders positionally with escaped args.
func expandPath(tmpl string, args []string) (string, error) {
	var b strings.Builder
	next := 0
	for {
		open := strings.IndexByte(tmpl, '{')
		if open < 0 {
			b.WriteString(tmpl)
			break
		}
		end := strings.IndexByte(tmpl[open:], '}')
		if end < 0 {
			return "", fmt.Errorf("%w: unterminated placeholder in %q", ErrPathArgs, tmpl)
		}
		if next >= len(args) {
			return "", fmt.Errorf("%w: missing value for %s", ErrPathArgs, tmpl[open:open+end+1])
		}
		b.WriteString(tmpl[:open])
		b.WriteString(url.PathEscape(args[next]))
		next++
		tmpl = tmpl[open+end+1:]
	}
	if next != len(args) {
		return "", fmt.Errorf("%w: %d unused", ErrPathArgs, len(args)-next)
	}
	return b.String(), nil
}
