package promptapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

var _ Fetcher = (*HTTPFetcher)(nil)

// maxBodySize limits the response body (1 MB); prompt payloads are small.
const maxBodySize = 1 << 20

// defaultUserAgent is the User-Agent header value for HTTP requests.
const defaultUserAgent = "langfuse-go/1.0"

// HTTPFetcher fetches prompts from a Langfuse host using basic authentication
// (public key as username, secret key as password).
type HTTPFetcher struct {
	host       string
	publicKey  string
	secretKey  string
	httpClient *http.Client
	userAgent  string
}

// HTTPOption configures HTTPFetcher.
type HTTPOption func(*HTTPFetcher)

// WithHTTPClient sets the HTTP client. Default has a 30s timeout. If c is nil, the default client is left unchanged.
func WithHTTPClient(c *http.Client) HTTPOption {
	return func(h *HTTPFetcher) {
		if c != nil {
			h.httpClient = c
		}
	}
}

// WithUserAgent overrides the User-Agent header. Empty keeps the default.
func WithUserAgent(ua string) HTTPOption {
	return func(h *HTTPFetcher) {
		if ua != "" {
			h.userAgent = ua
		}
	}
}

// NewHTTPFetcher creates an HTTPFetcher. host must be an absolute URL (e.g. https://cloud.langfuse.com).
func NewHTTPFetcher(host, publicKey, secretKey string, opts ...HTTPOption) (*HTTPFetcher, error) {
	host = strings.TrimSuffix(host, "/")
	if host == "" {
		return nil, fmt.Errorf("promptapi: host must not be empty")
	}
	parsed, err := url.Parse(host)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("promptapi: invalid host %q", host)
	}
	h := &HTTPFetcher{
		host:       host,
		publicKey:  publicKey,
		secretKey:  secretKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		userAgent:  defaultUserAgent,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

// Fetch issues GET {host}/api/public/v2/prompts/{name} and returns the body.
// 404 yields ErrNotFound, 401/403 ErrUnauthorized, other non-2xx ErrHTTPStatus; all wrap ErrFetchFailed.
func (h *HTTPFetcher) Fetch(ctx context.Context, name string, q Query) ([]byte, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	u := h.host + PromptPath(name)
	if qs := q.Values().Encode(); qs != "" {
		u += "?" + qs
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	req.SetBasicAuth(h.publicKey, h.secretKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", h.userAgent)
	resp, err := h.httpClient.Do(req) // #nosec G107 -- host is from config and name is path-escaped
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %w: %q", ErrFetchFailed, ErrNotFound, name)
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("%w: %w: %s", ErrFetchFailed, ErrUnauthorized, resp.Status)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, fmt.Errorf("%w: %w: %s %s", ErrFetchFailed, ErrHTTPStatus, resp.Status, u)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", ErrFetchFailed, err)
	}
	// Detect truncation: if more data is available, body exceeded maxBodySize.
	probe := make([]byte, 1)
	if n, _ := resp.Body.Read(probe); n > 0 {
		return nil, fmt.Errorf("%w: response body exceeds %d bytes", ErrFetchFailed, maxBodySize)
	}
	return data, nil
}
