package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"
)

// Client proxies a remote lineage backend over HTTP. Transient failures
// (network errors, 5xx) are retried with exponential backoff; a request
// that exhausts its retries surfaces as an error so callers never feed
// partial data into layout or analysis.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger

	maxRetries    uint64
	retryBaseWait time.Duration
}

// ClientOption customizes a Client.
type ClientOption func(*Client)

// WithHTTPClient swaps the underlying *http.Client.
func WithHTTPClient(h *http.Client) ClientOption {
	return func(c *Client) { c.http = h }
}

// WithRetries sets the retry budget and initial backoff.
func WithRetries(max uint64, baseWait time.Duration) ClientOption {
	return func(c *Client) {
		c.maxRetries = max
		c.retryBaseWait = baseWait
	}
}

// NewClient creates a client for the backend at baseURL.
func NewClient(baseURL string, logger *slog.Logger, opts ...ClientOption) *Client {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	c := &Client{
		baseURL:       strings.TrimRight(baseURL, "/"),
		http:          &http.Client{Timeout: 30 * time.Second},
		logger:        logger,
		maxRetries:    3,
		retryBaseWait: 250 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetLineageGraph fetches the schema graph.
func (c *Client) GetLineageGraph(ctx context.Context, schemaID string, expandedClassIDs []string) (*LineageGraph, error) {
	q := url.Values{}
	if len(expandedClassIDs) > 0 {
		q.Set("expanded", strings.Join(expandedClassIDs, ","))
	}
	var out LineageGraph
	if err := c.getJSON(ctx, fmt.Sprintf("/api/schemas/%s/graph", url.PathEscape(schemaID)), q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FindPaths runs a path query on the backend.
func (c *Client) FindPaths(ctx context.Context, schemaID string, nodeIDs []string, maxDepth int) (*PathsResult, error) {
	q := url.Values{}
	q.Set("nodes", strings.Join(nodeIDs, ","))
	if maxDepth > 0 {
		q.Set("maxDepth", strconv.Itoa(maxDepth))
	}
	var out PathsResult
	if err := c.getJSON(ctx, fmt.Sprintf("/api/schemas/%s/paths", url.PathEscape(schemaID)), q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetSchemaStats fetches schema statistics.
func (c *Client) GetSchemaStats(ctx context.Context, schemaID string) (*SchemaStats, error) {
	var out SchemaStats
	if err := c.getJSON(ctx, fmt.Sprintf("/api/schemas/%s/stats", url.PathEscape(schemaID)), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	backoff := retry.WithMaxRetries(c.maxRetries, retry.NewExponential(c.retryBaseWait))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return err
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			c.logger.Warn("backend request failed, will retry", "url", endpoint, "error", err)
			return retry.RetryableError(err)
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode >= 500:
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			c.logger.Warn("backend returned server error, will retry",
				"url", endpoint, "status", resp.StatusCode)
			return retry.RetryableError(fmt.Errorf("backend returned %d: %s", resp.StatusCode, body))
		case resp.StatusCode != http.StatusOK:
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			return fmt.Errorf("backend returned %d: %s", resp.StatusCode, body)
		}

		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode backend response: %w", err)
		}
		return nil
	})
}
