// Package fetch is the transport boundary: it retrieves text or JSON
// bodies with a hard timeout and reports failures as typed errors so the
// watcher can tell transient trouble from bad payloads.
package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
)

// ErrorKind classifies a fetch failure.
type ErrorKind int

const (
	KindNetwork ErrorKind = iota
	KindTimeout
	KindMalformed
)

func (k ErrorKind) String() string {
	switch k {
	case KindTimeout:
		return "timeout"
	case KindMalformed:
		return "malformed response"
	default:
		return "network failure"
	}
}

// Error is a transient fetch failure. It never exits the process; the
// watcher retries on its next scheduled tick.
type Error struct {
	Kind ErrorKind
	URL  string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("fetch %s: %s: %v", e.URL, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// IsTimeout reports whether err is a fetch timeout.
func IsTimeout(err error) bool {
	var fe *Error
	return errors.As(err, &fe) && fe.Kind == KindTimeout
}

// TextFetcher fetches a URL body as text. Satisfied by *Client; tests
// substitute fakes.
type TextFetcher interface {
	FetchText(ctx context.Context, url string) (body, contentType string, err error)
}

// JSONFetcher fetches and decodes a JSON object body.
type JSONFetcher interface {
	FetchJSON(ctx context.Context, url string) (map[string]any, error)
}

// Client fetches over HTTP with a fixed timeout per request.
type Client struct {
	httpClient *http.Client
	timeout    time.Duration
}

// DefaultTimeout bounds every fetch unless overridden.
const DefaultTimeout = 10 * time.Second

// NewClient creates a fetch client. A non-positive timeout falls back to
// DefaultTimeout.
func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		timeout:    timeout,
	}
}

// FetchText retrieves the body at url as a string along with the
// Content-Type header. Always returns within the timeout or fails with a
// timeout-kind error.
func (c *Client) FetchText(ctx context.Context, url string) (string, string, error) {
	body, contentType, err := c.get(ctx, url)
	if err != nil {
		return "", "", err
	}
	return string(body), contentType, nil
}

// FetchJSON retrieves and decodes a JSON object at url. A body that is
// not a JSON object is a malformed-response error.
func (c *Client) FetchJSON(ctx context.Context, url string) (map[string]any, error) {
	body, _, err := c.get(ctx, url)
	if err != nil {
		return nil, err
	}
	var parsed map[string]any
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, &Error{Kind: KindMalformed, URL: url, Err: err}
	}
	return parsed, nil
}

func (c *Client) get(ctx context.Context, url string) ([]byte, string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", &Error{Kind: KindNetwork, URL: url, Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", &Error{Kind: classify(ctx, err), URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, "", &Error{Kind: KindNetwork, URL: url, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", &Error{Kind: classify(ctx, err), URL: url, Err: err}
	}
	return body, resp.Header.Get("Content-Type"), nil
}

func classify(ctx context.Context, err error) ErrorKind {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return KindTimeout
	}
	return KindNetwork
}
