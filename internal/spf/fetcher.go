package spf

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Fetcher downloads the official tariff bulletin.
type Fetcher interface {
	Fetch(ctx context.Context) ([]byte, error)
}

type httpFetcher struct {
	client *http.Client
	url    string
}

func NewFetcher(url string, timeout time.Duration) Fetcher {
	return &httpFetcher{
		client: &http.Client{Timeout: timeout},
		url:    url,
	}
}

func (f *httpFetcher) Fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("tariff bulletin fetch: unexpected status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
