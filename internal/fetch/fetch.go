// Package fetch provides the resource-fetch collaborators the loading
// engine depends on. The engine only sees the Fetcher interface; backends
// cover HTTP, a local document root, and S3-compatible object storage.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/net/http2"
)

// ErrStatus marks a fetch that reached the server but got a non-success
// response.
var ErrStatus = errors.New("unexpected status")

// Fetcher retrieves the raw bytes behind a URL. Any non-success outcome is
// an error; there are no retries at this layer or above.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// HTTPFetcher fetches over HTTP(S) with an HTTP/2-capable transport.
type HTTPFetcher struct {
	client *http.Client
}

func NewHTTPFetcher() (*HTTPFetcher, error) {
	tr := &http.Transport{}
	if err := http2.ConfigureTransport(tr); err != nil {
		return nil, fmt.Errorf("configure http2 transport: %w", err)
	}
	return &HTTPFetcher{client: &http.Client{Transport: tr}}, nil
}

func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch %s: %w: %s", url, ErrStatus, resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: read body: %w", url, err)
	}
	return body, nil
}
