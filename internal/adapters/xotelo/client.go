// internal/adapters/xotelo/client.go
package xotelo

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
	"time"

	"visitjo/internal/adapters/observability"
	"visitjo/internal/domain"
)

const (
	DefaultBaseURL     = "https://data.xotelo.com/api"
	DefaultLocationKey = "g293985" // Jordan, country level
	DefaultSort        = "best_value"

	userAgent = "VISIT-JO/1.0 (+https://VISIT-JO.com)"

	// a full 100-listing page is well under 1 MiB
	maxBodyBytes = 32 << 20
)

var ErrProvider = errors.New("xotelo: provider error")

// ProviderError is a structured error reported in the response body.
type ProviderError struct {
	LocationKey string
	Offset      int
	Message     string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("xotelo error for %s offset=%d: %s", e.LocationKey, e.Offset, e.Message)
}

func (e *ProviderError) Unwrap() error { return ErrProvider }

type Client struct {
	base string
	hc   *http.Client
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.hc = hc
		}
	}
}

// New returns a client for the list endpoint. Requests carry no client-side timeout;
// pass WithHTTPClient to set one.
func New(base string, opts ...Option) *Client {
	if strings.TrimSpace(base) == "" {
		base = DefaultBaseURL
	}
	c := &Client{base: strings.TrimRight(base, "/"), hc: &http.Client{}}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SourceURL identifies where a location's listings come from, for generated-file banners.
func (c *Client) SourceURL(locationKey string) string {
	return c.base + "/list?location_key=" + url.QueryEscape(locationKey)
}

func (c *Client) listURL(q domain.ListQuery) string {
	v := url.Values{}
	v.Set("location_key", q.LocationKey)
	v.Set("limit", strconv.Itoa(q.Limit))
	v.Set("offset", strconv.Itoa(q.Offset))
	v.Set("sort", q.Sort)
	return c.base + "/list?" + v.Encode()
}

type listResponse struct {
	Result json.RawMessage `json:"result"`
	Error  json.RawMessage `json:"error"`
}

type listResult struct {
	List       json.RawMessage `json:"list"`
	TotalCount domain.Number   `json:"total_count"`
}

// ListPage fetches one page of the list endpoint. A transport failure, an undecodable
// body, a provider-reported error or a non-2xx status is returned as an error; nothing is retried.
func (c *Client) ListPage(ctx context.Context, q domain.ListQuery) (domain.ListPage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.listURL(q), nil)
	if err != nil {
		return domain.ListPage{}, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		observability.ObserveExternal("xotelo", "list", 0, time.Since(start))
		return domain.ListPage{}, fmt.Errorf("xotelo list %s offset=%d: %w", q.LocationKey, q.Offset, err)
	}
	defer resp.Body.Close()
	observability.ObserveExternal("xotelo", "list", resp.StatusCode, time.Since(start))

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return domain.ListPage{}, fmt.Errorf("xotelo read body: %w", err)
	}

	var lr listResponse
	if err := json.Unmarshal(body, &lr); err != nil {
		if !ok(resp.StatusCode) {
			return domain.ListPage{}, badStatus(resp.StatusCode, body)
		}
		return domain.ListPage{}, fmt.Errorf("xotelo decode list offset=%d: %w", q.Offset, err)
	}
	if domain.Truthy(lr.Error) {
		return domain.ListPage{}, &ProviderError{LocationKey: q.LocationKey, Offset: q.Offset, Message: errorMessage(lr.Error)}
	}
	if !ok(resp.StatusCode) {
		return domain.ListPage{}, badStatus(resp.StatusCode, body)
	}

	var res listResult
	_ = json.Unmarshal(lr.Result, &res)
	var listings []domain.Listing
	if err := json.Unmarshal(res.List, &listings); err != nil {
		listings = nil
	}
	return domain.ListPage{Listings: listings, TotalCount: int(res.TotalCount)}, nil
}

func ok(status int) bool { return status >= 200 && status < 300 }

func badStatus(status int, body []byte) error {
	b := body
	if len(b) > 4096 {
		b = b[:4096]
	}
	return fmt.Errorf("xotelo bad status %d: %s", status, strings.TrimSpace(string(b)))
}

// errorMessage prefers error.message and falls back to the raw error value.
func errorMessage(raw json.RawMessage) string {
	var e struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &e); err == nil && e.Message != "" {
		return e.Message
	}
	return string(raw)
}
