package langfuse

import (
	"net/http"

	"github.com/skosovsky/langfuse/promptapi"

	"go.uber.org/zap"
)

// Option configures a Client (functional options pattern).
type Option func(*Client)

// WithHTTPClient sets the HTTP client used by the default fetcher (e.g. to impose a timeout).
// Ignored when WithFetcher is given.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.httpOpts = append(cl.httpOpts, promptapi.WithHTTPClient(c))
	}
}

// WithUserAgent sets the User-Agent header sent by the default fetcher.
func WithUserAgent(ua string) Option {
	return func(cl *Client) {
		cl.httpOpts = append(cl.httpOpts, promptapi.WithUserAgent(ua))
	}
}

// WithFetcher replaces the HTTP transport entirely. If f is nil, the default fetcher is used.
func WithFetcher(f promptapi.Fetcher) Option {
	return func(cl *Client) {
		cl.fetcher = f
	}
}

// WithLogger sets the logger for fetch diagnostics. Default is a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(cl *Client) {
		if l != nil {
			cl.logger = l
		}
	}
}

// WithMaxConcurrency bounds parallel requests in FetchPrompts. n <= 0 keeps the default.
func WithMaxConcurrency(n int) Option {
	return func(cl *Client) {
		if n > 0 {
			cl.maxConcurrency = n
		}
	}
}

// FetchOption selects which version of a prompt FetchPrompt returns.
type FetchOption func(*promptapi.Query)

// WithVersion requests a specific prompt version.
func WithVersion(v int) FetchOption {
	return func(q *promptapi.Query) {
		q.Version = v
	}
}

// WithLabel requests the version carrying label (e.g. "staging").
func WithLabel(label string) FetchOption {
	return func(q *promptapi.Query) {
		q.Label = label
	}
}

func buildQuery(opts []FetchOption) promptapi.Query {
	var q promptapi.Query
	for _, opt := range opts {
		opt(&q)
	}
	return q
}
