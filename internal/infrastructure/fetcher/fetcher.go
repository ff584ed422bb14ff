// Package fetcher retrieves remote pages over HTTP(S).
package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/99minutos/piracy-detector/internal/core/domain"
)

const (
	defaultMaxBodyBytes = 10 << 20
	defaultUserAgent    = "piracy-detector/1.0"
)

// Options controls the HTTP client used for fetching.
type Options struct {
	// Timeout bounds the whole request. Zero means no timeout.
	Timeout time.Duration
	// MaxBodyBytes caps how much of the response body is read.
	MaxBodyBytes int64
	UserAgent    string
}

// HTTPFetcher issues a single GET per call. No caching, no retries.
type HTTPFetcher struct {
	client       *http.Client
	maxBodyBytes int64
	userAgent    string
}

func New(opts Options) *HTTPFetcher {
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = defaultMaxBodyBytes
	}
	if opts.UserAgent == "" {
		opts.UserAgent = defaultUserAgent
	}
	return &HTTPFetcher{
		client:       &http.Client{Timeout: opts.Timeout},
		maxBodyBytes: opts.MaxBodyBytes,
		userAgent:    opts.UserAgent,
	}
}

// Fetch returns the body of rawURL. Transport failures and non-2xx statuses
// are returned wrapped in domain.ErrFetchFailed.
func (f *HTTPFetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrFetchFailed, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("%w: unsupported protocol scheme %q", domain.ErrFetchFailed, u.Scheme)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrFetchFailed, err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: request failed with status code %d", domain.ErrFetchFailed, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("%w: read body: %v", domain.ErrFetchFailed, err)
	}
	return string(body), nil
}
