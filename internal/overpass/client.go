package overpass

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

// ErrAllMirrorsFailed is returned after every configured mirror has been
// tried once without success.
var ErrAllMirrorsFailed = errors.New("all overpass mirrors failed")

// Client executes queries against an ordered pool of interpreter mirrors,
// advancing to the next mirror on any failure and returning on the first
// success. One attempt per mirror, no shared retry budget.
type Client struct {
	client    *http.Client
	mirrors   []string
	userAgent string

	// mirrorPause separates consecutive mirror attempts; overridable in tests.
	mirrorPause time.Duration
}

// NewClient creates a Client over the given mirror pool, tried in order.
func NewClient(client *http.Client, mirrors []string, userAgent string) *Client {
	return &Client{
		client:      client,
		mirrors:     mirrors,
		userAgent:   userAgent,
		mirrorPause: 800 * time.Millisecond,
	}
}

// Execute POSTs the query to each mirror in turn and returns the first
// successfully decoded response. Network errors, non-2xx statuses and
// malformed bodies all advance to the next mirror after a short pause.
func (c *Client) Execute(ctx context.Context, query string) (*Response, error) {
	if len(c.mirrors) == 0 {
		return nil, fmt.Errorf("%w: no mirrors configured", ErrAllMirrorsFailed)
	}

	var lastErr error
	for _, mirror := range c.mirrors {
		resp, err := c.post(ctx, mirror, query)
		if err == nil {
			return resp, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		log.Printf("overpass: mirror %s failed: %v", mirror, err)
		lastErr = err

		timer := time.NewTimer(c.mirrorPause)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	return nil, fmt.Errorf("%w: last error: %v", ErrAllMirrorsFailed, lastErr)
}

func (c *Client) post(ctx context.Context, mirror, query string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, mirror, strings.NewReader(query))
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("overpass status %d", resp.StatusCode)
	}

	var out Response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode overpass response: %w", err)
	}
	return &out, nil
}
