package pricing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"
)

// httpClientConfig holds the transport settings shared by the HTTP
// provider adapters.
type httpClientConfig struct {
	// timeout is the per-request deadline.
	timeout time.Duration

	// maxIdleConns bounds the connection pool.
	maxIdleConns int
}

func defaultClientConfig() httpClientConfig {
	return httpClientConfig{
		timeout:      5 * time.Second,
		maxIdleConns: 10,
	}
}

// newHTTPClient builds an HTTP client with connection pooling and a
// hard request timeout. Provider lookups are single-attempt: a failed
// fetch falls back to cached or static rates, so retries only add
// latency.
func newHTTPClient(cfg httpClientConfig) *http.Client {
	transport := &http.Transport{
		MaxIdleConns:        cfg.maxIdleConns,
		MaxIdleConnsPerHost: cfg.maxIdleConns,
		IdleConnTimeout:     90 * time.Second,
		ForceAttemptHTTP2:   true,
	}
	return &http.Client{
		Transport: transport,
		Timeout:   cfg.timeout,
	}
}

// fetchJSON performs a GET and decodes the JSON body into out,
// translating failures into the package's typed errors.
func fetchJSON(ctx context.Context, client *http.Client, provider, url string, headers map[string]string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return &ProviderError{Provider: provider, Message: "build request", Cause: err}
	}
	req.Header.Set("Accept", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return &TimeoutError{Provider: provider, Timeout: client.Timeout}
		}
		return &ProviderError{Provider: provider, Message: "request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return &RateLimitError{Provider: provider, RetryAfter: parseRetryAfter(resp)}
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &ProviderError{
			Provider:   provider,
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("unexpected status: %s", truncate(string(body), 200)),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &ParseError{Provider: provider, Cause: err}
	}
	return nil
}

// parseRetryAfter reads the Retry-After header as delay seconds.
func parseRetryAfter(resp *http.Response) time.Duration {
	raw := resp.Header.Get("Retry-After")
	if raw == "" {
		return 0
	}
	secs, err := strconv.Atoi(raw)
	if err != nil || secs < 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
