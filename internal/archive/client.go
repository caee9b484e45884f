package archive

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ternarybob/arbor"
)

// Client fetches archive index and thread pages over HTTP.
type Client struct {
	httpClient *http.Client
	host       string
	logger     arbor.ILogger
}

// NewClient builds a Client against the configured archive host, e.g.
// "lists.example.org"; a host given without a scheme is fetched over https.
func NewClient(host string, logger arbor.ILogger) *Client {
	if !strings.Contains(host, "://") {
		host = "https://" + host
	}
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		host:       strings.TrimRight(host, "/"),
		logger:     logger,
	}
}

func (c *Client) fetch(ctx context.Context, path string) (string, error) {
	url := c.host + "/" + strings.TrimLeft(path, "/")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build request for %s: %w", url, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d fetching %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body from %s: %w", url, err)
	}

	c.logger.Debug().Str("url", url).Int("bytes", len(body)).Msg("fetched archive page")
	return string(body), nil
}

// FetchIndex fetches and parses a monthly archive index page.
func (c *Client) FetchIndex(ctx context.Context, indexPath string) ([]IndexEntry, error) {
	html, err := c.fetch(ctx, indexPath)
	if err != nil {
		return nil, err
	}
	return parseIndexPage(html)
}

// FetchThread fetches and parses a single thread page.
func (c *Client) FetchThread(ctx context.Context, threadPath string) (*ThreadEntry, error) {
	html, err := c.fetch(ctx, threadPath)
	if err != nil {
		return nil, err
	}
	return parseThreadPage(html)
}

// FetchMonth fetches the index page at indexPath and every thread it lists,
// returning the root entry of each thread in index order.
func (c *Client) FetchMonth(ctx context.Context, indexPath string) ([]*ThreadEntry, error) {
	entries, err := c.FetchIndex(ctx, indexPath)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch archive index: %w", err)
	}

	roots := make([]*ThreadEntry, 0, len(entries))
	for _, e := range entries {
		if e.Path == "" {
			continue
		}
		thread, err := c.FetchThread(ctx, e.Path)
		if err != nil {
			c.logger.Warn().Err(err).Str("id", e.ID).Str("path", e.Path).Msg("failed to fetch thread, skipping")
			continue
		}
		roots = append(roots, thread)
	}

	return roots, nil
}
