package soda

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/civicdata/dallaspd/pkg/buildinfo"
	"github.com/civicdata/dallaspd/pkg/errors"
	"github.com/civicdata/dallaspd/pkg/observability"
)

// DefaultBaseURL is the resource root of the Dallas Open Data portal.
// Every dataset endpoint is <base>/<four-by-four>.json.
const DefaultBaseURL = "https://www.dallasopendata.com/resource"

// Client provides shared HTTP functionality for all dataset fetchers.
// It attaches identifying headers and translates API failures into the
// structured error codes of [errors].
//
// The zero value is not usable; construct with [NewClient].
// All methods are safe for concurrent use by multiple goroutines.
type Client struct {
	http     *http.Client
	baseURL  string
	appToken string
	logf     func(string, ...any)
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the portal resource root. Used by tests and by
// callers targeting a mirror of the portal.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimSuffix(u, "/") }
}

// WithAppToken sets an application token sent as X-App-Token on every
// request. Tokens raise the portal's throttling thresholds; requests
// without one are still accepted.
func WithAppToken(token string) Option {
	return func(c *Client) { c.appToken = token }
}

// WithHTTPClient replaces the underlying HTTP client.
// The default client carries no timeout; long paginated fetches run until
// completion or context cancellation.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithLogger sets a callback for informational and warning messages
// (pagination progress, ignored filter arguments, truncated discovery
// queries). The callback receives printf-style arguments.
func WithLogger(fn func(string, ...any)) Option {
	return func(c *Client) {
		if fn != nil {
			c.logf = fn
		}
	}
}

// NewClient creates a Client for the Dallas Open Data portal.
func NewClient(opts ...Option) *Client {
	c := &Client{
		http:    &http.Client{},
		baseURL: DefaultBaseURL,
		logf:    func(string, ...any) {},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Logf emits a message through the client's logger callback.
// Dataset adapters use this to report non-fatal conditions.
func (c *Client) Logf(format string, args ...any) { c.logf(format, args...) }

func (c *Client) endpointURL(dataset string, params url.Values) string {
	return c.baseURL + "/" + dataset + ".json?" + params.Encode()
}

// userAgent identifies the client on every request.
func userAgent() string {
	return "dallaspd/" + buildinfo.Version + " (github.com/civicdata/dallaspd)"
}

// socrataError is the JSON error body the portal returns for 4xx responses.
type socrataError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// getRows issues one GET against a dataset endpoint and decodes the JSON
// array response. A trimmed body of two or fewer characters is treated as
// an empty page, equivalent to "[]".
func (c *Client) getRows(ctx context.Context, dataset string, params url.Values) ([]Row, error) {
	u := c.endpointURL(dataset, params)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRequestFailed, err, "building request for %s", u)
	}
	req.Header.Set("User-Agent", userAgent())
	req.Header.Set("X-Request-Id", uuid.NewString())
	req.Header.Set("Accept", "application/json")
	if c.appToken != "" {
		req.Header.Set("X-App-Token", c.appToken)
	}

	observability.HTTP().OnRequest(ctx, http.MethodGet, req.URL.Host, req.URL.Path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		observability.HTTP().OnError(ctx, http.MethodGet, req.URL.Host, req.URL.Path, err)
		return nil, errors.Wrap(errors.ErrCodeRequestFailed, err, "requesting %s", u)
	}
	defer resp.Body.Close()
	observability.HTTP().OnResponse(ctx, http.MethodGet, req.URL.Host, req.URL.Path, resp.StatusCode, time.Since(start))

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRequestFailed, err, "reading response from %s", u)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apiError(resp.StatusCode, body, u)
	}

	if ct := resp.Header.Get("Content-Type"); ct != "" && !strings.Contains(ct, "json") {
		return nil, errors.New(errors.ErrCodeRequestFailed, "unexpected content type %q from %s", ct, u)
	}

	trimmed := strings.TrimSpace(string(body))
	if len(trimmed) <= 2 {
		return nil, nil
	}

	var rows []Row
	if err := json.Unmarshal([]byte(trimmed), &rows); err != nil {
		return nil, errors.Wrap(errors.ErrCodeDecodeFailed, err, "decoding response from %s", u)
	}
	return rows, nil
}

// apiError maps a non-2xx response to a structured error. The portal's
// "no-such-column" signal on 400 responses becomes UNKNOWN_FIELD so that
// discovery queries can distinguish a bad field name from a bad request.
func apiError(status int, body []byte, url string) error {
	var se socrataError
	if err := json.Unmarshal(body, &se); err == nil && se.Message != "" {
		if status >= 400 && status < 500 && isNoSuchColumn(se) {
			return errors.New(errors.ErrCodeUnknownField, "%s", se.Message)
		}
		return errors.New(errors.ErrCodeRequestFailed, "status %d from %s: %s", status, url, se.Message)
	}
	return errors.New(errors.ErrCodeRequestFailed, "status %d from %s", status, url)
}

func isNoSuchColumn(se socrataError) bool {
	return strings.Contains(se.Code, "no-such-column") ||
		strings.Contains(se.Message, "No such column")
}
