package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/jonwraymond/marketdev-mcp/tool"
)

// DefaultBaseURL is the market.dev catalog API root.
const DefaultBaseURL = "https://explore.market.dev/api/v1"

// ErrMalformedResponse indicates a 2xx response whose body is not JSON.
var ErrMalformedResponse = errors.New("malformed response")

// maxDrain bounds how much of an error body is read before closing, so the
// connection can be reused.
const maxDrain = 64 << 10

// StatusError reports a non-2xx response from the catalog.
type StatusError struct {
	Code   int
	Reason string
}

// Error returns "<reason> (<code>)".
func (e *StatusError) Error() string {
	return fmt.Sprintf("%s (%d)", e.Reason, e.Code)
}

// Client issues search requests against the remote catalog.
// A Client is safe for concurrent use.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
}

// NewClient creates a client for the catalog rooted at baseURL.
// A nil httpClient uses http.DefaultClient.
func NewClient(baseURL string, httpClient *http.Client) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base URL %q: scheme must be http or https", baseURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("base URL %q: host is required", baseURL)
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: u, httpClient: httpClient}, nil
}

// URL returns the request URL for path with q as its query string.
func (c *Client) URL(path string, q Query) string {
	u := *c.baseURL
	u.Path = strings.TrimSuffix(u.Path, "/") + "/" + strings.TrimPrefix(path, "/")
	u.RawPath = ""
	u.RawQuery = q.Encode()
	u.Fragment = ""
	return u.String()
}

// Search performs a GET on path and decodes the JSON body.
//
// A non-2xx status returns a *StatusError. Transport failures and bodies that
// are not JSON are internal faults; the latter also match
// ErrMalformedResponse.
func (c *Client) Search(ctx context.Context, path string, q Query) (any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL(path, q), nil)
	if err != nil {
		return nil, tool.Internal(fmt.Errorf("building request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, tool.Internal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxDrain))
		return nil, &StatusError{Code: resp.StatusCode, Reason: reasonPhrase(resp)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, tool.Internal(fmt.Errorf("reading response: %w", err))
	}
	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, tool.Internal(fmt.Errorf("%w: %v", ErrMalformedResponse, err))
	}
	return payload, nil
}

// reasonPhrase extracts the reason phrase from the status line, falling back
// to the standard text for the code.
func reasonPhrase(resp *http.Response) string {
	reason := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if reason == "" {
		reason = http.StatusText(resp.StatusCode)
	}
	return reason
}
