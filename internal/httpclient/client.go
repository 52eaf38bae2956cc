// Package httpclient provides the HTTP client used for remote documentation
// fetches.
package httpclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	// DefaultTimeout is the default timeout for HTTP requests.
	DefaultTimeout = 10 * time.Second

	// MaxResponseSize caps fetched documents at 10MB. Documentation files
	// are text; anything larger is rejected rather than buffered.
	MaxResponseSize = 10 * 1024 * 1024

	// UserAgent is the user agent string for HTTP requests.
	UserAgent = "mcpdoc/1.0"
)

// Client is an interface for fetching remote documentation content.
type Client interface {
	// Get performs an HTTP GET request and returns the response body.
	Get(ctx context.Context, url string) ([]byte, error)
}

// DefaultClient is the default HTTP client implementation.
type DefaultClient struct {
	client *http.Client
}

// NewDefaultClient creates a client with the given request timeout (0 uses
// DefaultTimeout). Redirects are only followed when followRedirects is set;
// otherwise a redirect response is returned as-is and surfaces as an HTTP
// status error.
func NewDefaultClient(timeout time.Duration, followRedirects bool) Client {
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	client := &http.Client{
		Timeout: timeout,
	}
	if !followRedirects {
		client.CheckRedirect = func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}

	return &DefaultClient{client: client}
}

// Get performs an HTTP GET request against url.
func (c *DefaultClient) Get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", "text/html, text/markdown, text/plain, */*")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, NewHTTPError(resp.StatusCode, url, resp.Status)
	}

	if resp.ContentLength > MaxResponseSize {
		return nil, fmt.Errorf("response size %d bytes exceeds maximum of %d bytes", resp.ContentLength, MaxResponseSize)
	}

	// +1 so reading past the cap is detectable.
	limitedReader := io.LimitReader(resp.Body, MaxResponseSize+1)
	body, err := io.ReadAll(limitedReader)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if int64(len(body)) > MaxResponseSize {
		return nil, fmt.Errorf("response size exceeds maximum of %d bytes", MaxResponseSize)
	}

	return body, nil
}
