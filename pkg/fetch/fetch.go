// Package fetch retrieves source model bytes over HTTP or from disk.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
)

// DefaultUserAgent is sent with every request unless overridden.
const DefaultUserAgent = "lumen/1.0"

// Error reports a failed download. StatusCode is 0 for transport or
// filesystem failures.
type Error struct {
	URL        string
	StatusCode int
	Status     string
	Err        error
}

func (e *Error) Error() string {
	switch {
	case e.StatusCode != 0:
		return fmt.Sprintf("download %s: %s", e.URL, e.Status)
	case e.Err != nil:
		return fmt.Sprintf("download %s: %v", e.URL, e.Err)
	default:
		return fmt.Sprintf("download %s: failed", e.URL)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Client downloads source assets.
type Client struct {
	HTTP      *http.Client
	UserAgent string
}

// NewClient creates a client using http.DefaultClient.
func NewClient() *Client {
	return &Client{
		HTTP:      http.DefaultClient,
		UserAgent: DefaultUserAgent,
	}
}

// Fetch performs a single GET and returns the complete body. Any non-2xx
// status fails; there is no retry.
func (c *Client) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &Error{URL: rawURL, Err: err}
	}
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	hc := c.HTTP
	if hc == nil {
		hc = http.DefaultClient
	}

	resp, err := hc.Do(req)
	if err != nil {
		return nil, &Error{URL: rawURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &Error{URL: rawURL, StatusCode: resp.StatusCode, Status: resp.Status}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{URL: rawURL, Err: fmt.Errorf("read body: %w", err)}
	}
	return data, nil
}

// IsRemote reports whether src is an http or https URL.
func IsRemote(src string) bool {
	u, err := url.Parse(src)
	if err != nil {
		return false
	}
	scheme := strings.ToLower(u.Scheme)
	return (scheme == "http" || scheme == "https") && u.Host != ""
}

// Source returns the bytes behind src, downloading it when it is a URL and
// reading it from disk otherwise.
func Source(ctx context.Context, c *Client, src string) ([]byte, error) {
	if IsRemote(src) {
		if c == nil {
			c = NewClient()
		}
		return c.Fetch(ctx, src)
	}

	data, err := os.ReadFile(src)
	if err != nil {
		return nil, &Error{URL: src, Err: err}
	}
	return data, nil
}
