// Package client is the typed data-access layer over the finance API.
// Queries cache their results under resource-derived keys; mutations drop
// the cache entries listed for them in the invalidation table. Monetary
// amounts cross this boundary exactly once: cents on the wire, decimal
// strings in the views.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

var (
	// ErrMissingID marks a by-id query invoked without an id. No request is
	// issued; the query simply stays idle.
	ErrMissingID = errors.New("client: missing id")

	// ErrRequestFailed is the generic typed error wrapped by every
	// non-success response. Transport detail never reaches the caller.
	ErrRequestFailed = errors.New("client: request failed")
)

// Client talks to one finance API server on behalf of one session.
type Client struct {
	baseURL string
	token   string
	httpc   *http.Client
	cache   *cache
}

// New builds a client for the given server and session token.
func New(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpc:   &http.Client{Timeout: 15 * time.Second},
		cache:   newCache(),
	}
}

// do runs one JSON round trip. out, when non-nil, receives the decoded
// response body (the envelope included).
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return ErrRequestFailed
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return ErrRequestFailed
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return ErrRequestFailed
		}
	}
	return nil
}
