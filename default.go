package langfuse

import (
	"context"
	"reflect"
	"sync"
)

type clientKey struct{}

// NewContext returns a copy of ctx carrying c as the active prompt client.
// A nil c, including a typed nil pointer such as (*Client)(nil), leaves ctx unchanged.
func NewContext(ctx context.Context, c PromptClient) context.Context {
	if isNilClient(c) {
		return ctx
	}
	return context.WithValue(ctx, clientKey{}, c)
}

func isNilClient(c PromptClient) bool {
	if c == nil {
		return true
	}
	v := reflect.ValueOf(c)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

// FromContext returns the client stored by NewContext, or Default() when ctx carries none.
// Returns nil if neither is set.
func FromContext(ctx context.Context) PromptClient {
	if c, ok := ctx.Value(clientKey{}).(PromptClient); ok && c != nil {
		return c
	}
	return Default()
}

var (
	defaultMu     sync.RWMutex
	defaultClient PromptClient
)

// Default returns the process-wide client installed by SetDefault, or nil.
func Default() PromptClient {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultClient
}

// SetDefault installs c as the process-wide client and returns a func that restores
// the previous one. Tests that install a fake must call restore (langfusetest.Install
// does so via t.Cleanup) and must not run in parallel with other tests using the slot.
// Prefer passing a PromptClient explicitly or via NewContext.
func SetDefault(c PromptClient) (restore func()) {
	if isNilClient(c) {
		c = nil
	}
	defaultMu.Lock()
	prev := defaultClient
	defaultClient = c
	defaultMu.Unlock()
	var once sync.Once
	return func() {
		once.Do(func() {
			defaultMu.Lock()
			defaultClient = prev
			defaultMu.Unlock()
		})
	}
}

// FetchPrompt fetches name with the client active for ctx (see FromContext).
// Returns ErrNoClient when no client is installed.
func FetchPrompt(ctx context.Context, name string, opts ...FetchOption) (*Prompt, error) {
	c := FromContext(ctx)
	if c == nil {
		return nil, ErrNoClient
	}
	return c.FetchPrompt(ctx, name, opts...)
}

// GetCompiledPrompt fetches name with the active client and compiles it with vars.
//
// Deprecated: use FetchPrompt(...).Compile(...) instead.
func GetCompiledPrompt(ctx context.Context, name string, vars Variables, opts ...FetchOption) (string, error) {
	p, err := FetchPrompt(ctx, name, opts...)
	if err != nil {
		return "", err
	}
	return p.Compile(vars)
}
