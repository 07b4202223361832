// Package download fetches fixture archives over HTTP and unpacks tarballs.
package download

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/John-Boik/ibis/internal/logging"
)

const (
	// DefaultBaseURL is the bucket holding the CI fixture archives.
	DefaultBaseURL = "https://storage.googleapis.com/ibis-ci-data"
	// DefaultArchive is fetched when no archive names are given.
	DefaultArchive = "ibis-testing-data.tar.gz"
)

// Client fetches fixture files over HTTP.
type Client struct {
	httpClient *http.Client
}

// NewClient builds a client with the given per-request timeout.
func NewClient(timeout time.Duration) *Client {
	if timeout == 0 {
		timeout = 5 * time.Minute
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Fetch downloads base/name into dir, creating dir if needed, and returns the
// path of the written file. Existing files are overwritten.
func (c *Client) Fetch(ctx context.Context, base, name, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("ensure download dir: %w", err)
	}

	u := strings.TrimRight(base, "/") + "/" + name
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", err
	}

	resp, err := c.do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", u, err)
	}
	defer resp.Body.Close()

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	n, err := io.Copy(f, resp.Body)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}

	logging.Infof("downloaded %s (%d bytes)", path, n)
	return path, nil
}

func (c *Client) do(req *http.Request) (*http.Response, error) {
	var attempt int
	for {
		attempt++
		resp, err := c.httpClient.Do(req)
		if err != nil {
			if shouldRetry(attempt, 0) {
				if err := sleep(req.Context(), attempt); err != nil {
					return nil, err
				}
				continue
			}
			return nil, err
		}

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return resp, nil
		}

		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		resp.Body.Close()

		if shouldRetry(attempt, resp.StatusCode) {
			if err := sleep(req.Context(), attempt); err != nil {
				return nil, err
			}
			continue
		}
		return nil, fmt.Errorf("%s: %s", resp.Status, strings.TrimSpace(string(body)))
	}
}

func shouldRetry(attempt int, status int) bool {
	if attempt >= 5 {
		return false
	}
	if status == 0 {
		return true
	}
	if status == http.StatusTooManyRequests || status >= 500 {
		return true
	}
	return false
}

// sleep waits out the backoff for attempt, returning early when ctx ends.
func sleep(ctx context.Context, attempt int) error {
	backoff := time.Duration(1<<uint(attempt-1)) * time.Second
	if backoff > 30*time.Second {
		backoff = 30 * time.Second
	}
	timer := time.NewTimer(backoff)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
