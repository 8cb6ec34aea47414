// Package client is a Go client for the Probuild API. Reads go through a
// QueryCache keyed by path and parameters; every mutation drops the cached
// queries it makes stale.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

type Client struct {
	BaseURL     string
	BearerToken string
	HTTPClient  *http.Client

	// CompletedStatuses feeds the local dashboard computation.
	CompletedStatuses []string

	Cache *QueryCache
}

func New(baseURL, token string) *Client {
	return &Client{
		BaseURL:     baseURL,
		BearerToken: token,
		HTTPClient:  &http.Client{Timeout: 10 * time.Second},
		Cache:       NewQueryCache(),
	}
}

// APIError wraps non-2xx responses. Missing and Cycle are set for blocked
// status changes and rejected dependency sets.
type APIError struct {
	StatusCode int
	Message    string   `json:"error"`
	Missing    []string `json:"missing,omitempty"`
	Cycle      []string `json:"cycle,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: status=%d message=%s", e.StatusCode, e.Message)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	raw, err := c.doRaw(ctx, method, path, query, body)
	if err != nil {
		return err
	}
	if out != nil && len(raw) > 0 {
		return json.Unmarshal(raw, out)
	}
	return nil
}

func (c *Client) doRaw(ctx context.Context, method, path string, query url.Values, body any) ([]byte, error) {
	hc := c.HTTPClient
	if hc == nil {
		hc = http.DefaultClient
	}
	endpoint := strings.TrimRight(c.BaseURL, "/") + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, err
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.BearerToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.BearerToken)
	}
	resp, err := hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if json.Unmarshal(b, apiErr) != nil || apiErr.Message == "" {
			apiErr.Message = strings.TrimSpace(string(b))
		}
		return nil, apiErr
	}
	return b, nil
}

// get serves a read from the cache, or fetches and stores it.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	key := Key(path, query)
	if raw, ok := c.Cache.Get(key); ok {
		return json.Unmarshal(raw, out)
	}
	raw, err := c.doRaw(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return err
	}
	c.Cache.Set(key, raw)
	return json.Unmarshal(raw, out)
}

// mutate sends a write and, on success, invalidates what the named
// mutation lists. params fill ":name" segments of those prefixes.
func (c *Client) mutate(ctx context.Context, m Mutation, params map[string]string, method, path string, body, out any) error {
	if err := c.do(ctx, method, path, nil, body, out); err != nil {
		return err
	}
	c.Cache.Invalidate(m, params)
	return nil
}

// idPath appends escaped segments to an endpoint path. base is used as is.
func idPath(base string, segments ...any) string {
	var b strings.Builder
	b.WriteString(base)
	for _, seg := range segments {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(fmt.Sprint(seg)))
	}
	return b.String()
}
