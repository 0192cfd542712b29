package langfuse

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/skosovsky/langfuse/promptapi"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const defaultMaxConcurrency = 4

// PromptClient fetches named prompts. Client talks to Langfuse; langfusetest.Fake serves
// prompts from memory. Code that needs prompts should accept a PromptClient.
type PromptClient interface {
	FetchPrompt(ctx context.Context, name string, opts ...FetchOption) (*Prompt, error)
}

// Ensures Client implements PromptClient.
var _ PromptClient = (*Client)(nil)

// Client fetches prompts from a Langfuse host. Configuration is fixed at construction;
// a Client is safe for concurrent use.
type Client struct {
	publicKey      string
	secretKey      string
	host           string
	fetcher        promptapi.Fetcher
	httpOpts       []promptapi.HTTPOption
	logger         *zap.Logger
	maxConcurrency int
}

// New creates a Client for host authenticated with the given key pair.
// Returns an error if host is not an absolute URL and no custom fetcher is supplied.
func New(publicKey, secretKey, host string, opts ...Option) (*Client, error) {
	c := &Client{
		publicKey:      publicKey,
		secretKey:      secretKey,
		host:           host,
		logger:         zap.NewNop(),
		maxConcurrency: defaultMaxConcurrency,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.fetcher == nil {
		f, err := promptapi.NewHTTPFetcher(host, publicKey, secretKey, c.httpOpts...)
		if err != nil {
			return nil, err
		}
		c.fetcher = f
	}
	c.httpOpts = nil
	return c, nil
}

// PublicKey returns the configured public key.
func (c *Client) PublicKey() string { return c.publicKey }

// SecretKey returns the configured secret key.
func (c *Client) SecretKey() string { return c.secretKey }

// Host returns the configured base URL.
func (c *Client) Host() string { return c.host }

// FetchPrompt retrieves name from Langfuse and wraps it in a Prompt.
// Every failure (transport, status, body) is returned as *FetchError.
// A response without a "prompt" field yields a Prompt with empty content.
func (c *Client) FetchPrompt(ctx context.Context, name string, opts ...FetchOption) (*Prompt, error) {
	if err := promptapi.ValidateName(name); err != nil {
		return nil, &FetchError{PromptName: name, Err: fmt.Errorf("%w: %w", ErrInvalidName, err)}
	}
	q := buildQuery(opts)
	log := c.logger.With(zap.String("prompt", name))
	if q.Version > 0 {
		log = log.With(zap.Int("version", q.Version))
	}
	if q.Label != "" {
		log = log.With(zap.String("label", q.Label))
	}
	log.Debug("fetching prompt")
	start := time.Now()

	data, err := c.fetcher.Fetch(ctx, name, q)
	if err != nil {
		return nil, &FetchError{PromptName: name, Err: err}
	}
	resp, err := promptapi.Decode(data)
	if err != nil {
		return nil, &FetchError{PromptName: name, Err: err}
	}
	log.Debug("prompt fetched",
		zap.Int("served_version", resp.Version),
		zap.Int("bytes", len(data)),
		zap.Duration("duration", time.Since(start)),
	)
	return NewPrompt(name, resp.Text, WithMetadata(Metadata{
		Version: resp.Version,
		Type:    resp.Type,
		Labels:  resp.Labels,
		Tags:    resp.Tags,
		Config:  resp.Config,
	})), nil
}

// GetCompiledPrompt fetches name and compiles it with vars in one call.
//
// Deprecated: kept for backward compatibility; use FetchPrompt(...).Compile(...) instead.
func (c *Client) GetCompiledPrompt(ctx context.Context, name string, vars Variables, opts ...FetchOption) (string, error) {
	p, err := c.FetchPrompt(ctx, name, opts...)
	if err != nil {
		return "", err
	}
	return p.Compile(vars)
}

// FetchPrompts fetches several prompts concurrently (bounded by WithMaxConcurrency).
// Duplicate names are fetched once. The first failure cancels the remaining requests and is returned.
func (c *Client) FetchPrompts(ctx context.Context, names ...string) (map[string]*Prompt, error) {
	out := make(map[string]*Prompt, len(names))
	if len(names) == 0 {
		return out, nil
	}
	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.maxConcurrency)
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true
		g.Go(func() error {
			p, err := c.FetchPrompt(gctx, name)
			if err != nil {
				return err
			}
			mu.Lock()
			out[name] = p
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// IsNotFound reports whether err means the service has no such prompt.
func IsNotFound(err error) bool {
	return errors.Is(err, promptapi.ErrNotFound)
}
