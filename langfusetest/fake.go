package langfusetest

import (
	"context"
	"fmt"
	"io/fs"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/skosovsky/langfuse"
	"github.com/skosovsky/langfuse/manifest"
)

// Ensures Fake implements langfuse.PromptClient.
var _ langfuse.PromptClient = (*Fake)(nil)

// Request is one recorded FetchPrompt call.
type Request struct {
	PromptName string
	Timestamp  time.Time
}

type fakeEntry struct {
	content string
	meta    langfuse.Metadata
}

// Fake serves prompts from memory. The zero value is not usable; call NewFake.
// All methods are safe for concurrent use.
type Fake struct {
	mu             sync.Mutex
	prompts        map[string]fakeEntry
	history        []Request
	throwOnMissing bool
	now            func() time.Time
}

// FakeOption configures a Fake.
type FakeOption func(*Fake)

// WithPrompts registers prompts at construction.
func WithPrompts(prompts map[string]string) FakeOption {
	return func(f *Fake) {
		for name, content := range prompts {
			f.prompts[name] = fakeEntry{content: content}
		}
	}
}

// WithThrowOnMissing sets the initial miss policy (default false).
func WithThrowOnMissing(throw bool) FakeOption {
	return func(f *Fake) {
		f.throwOnMissing = throw
	}
}

// WithClock sets the time source for request timestamps. If now is nil, time.Now is used.
func WithClock(now func() time.Time) FakeOption {
	return func(f *Fake) {
		if now != nil {
			f.now = now
		}
	}
}

// NewFake creates an empty Fake; unknown prompts resolve to empty templates until ThrowOnMissing(true).
func NewFake(opts ...FakeOption) *Fake {
	f := &Fake{
		prompts: make(map[string]fakeEntry),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// AddPrompt registers content under name, replacing any previous content.
func (f *Fake) AddPrompt(name, content string) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts[name] = fakeEntry{content: content}
	return f
}

// AddPrompts registers every name/content pair.
func (f *Fake) AddPrompts(prompts map[string]string) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	for name, content := range prompts {
		f.prompts[name] = fakeEntry{content: content}
	}
	return f
}

// LoadFixtures registers every prompt from a YAML fixture file (see package manifest),
// keeping version, labels, tags and config.
func (f *Fake) LoadFixtures(path string) error {
	prompts, err := manifest.ParseFile(path)
	if err != nil {
		return err
	}
	f.addLoaded(prompts)
	return nil
}

// LoadFixturesFS is LoadFixtures for an fs.FS (e.g. embed.FS).
func (f *Fake) LoadFixturesFS(fsys fs.FS, name string) error {
	prompts, err := manifest.ParseFS(fsys, name)
	if err != nil {
		return err
	}
	f.addLoaded(prompts)
	return nil
}

func (f *Fake) addLoaded(prompts []*langfuse.Prompt) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range prompts {
		f.prompts[p.Name()] = fakeEntry{content: p.Raw(), meta: p.Metadata()}
	}
}

// ThrowOnMissing makes FetchPrompt fail with ErrPromptNotFound for unregistered names.
func (f *Fake) ThrowOnMissing(throw bool) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.throwOnMissing = throw
	return f
}

// FetchPrompt records the request, even when ctx is done, and returns the registered prompt.
// Fetch options are accepted for interface compatibility and ignored.
// Unregistered names return an empty Prompt, or ErrPromptNotFound when ThrowOnMissing is set.
func (f *Fake) FetchPrompt(ctx context.Context, name string, _ ...langfuse.FetchOption) (*langfuse.Prompt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.history = append(f.history, Request{PromptName: name, Timestamp: f.now()})
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ent, ok := f.prompts[name]
	if !ok {
		if f.throwOnMissing {
			return nil, fmt.Errorf("%w: %q", ErrPromptNotFound, name)
		}
		return langfuse.NewPrompt(name, ""), nil
	}
	return langfuse.NewPrompt(name, ent.content, langfuse.WithMetadata(ent.meta)), nil
}

// GetCompiledPrompt mirrors langfuse.Client.GetCompiledPrompt.
//
// Deprecated: use FetchPrompt(...).Compile(...) instead.
func (f *Fake) GetCompiledPrompt(ctx context.Context, name string, vars langfuse.Variables, opts ...langfuse.FetchOption) (string, error) {
	p, err := f.FetchPrompt(ctx, name, opts...)
	if err != nil {
		return "", err
	}
	return p.Compile(vars)
}

// RequestHistory returns a copy of the recorded requests in call order.
func (f *Fake) RequestHistory() []Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.history)
}

// ClearRequestHistory forgets all recorded requests. Registered prompts are kept.
func (f *Fake) ClearRequestHistory() *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.history = nil
	return f
}

// AvailablePrompts returns the registered prompt names, sorted.
func (f *Fake) AvailablePrompts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Sorted(maps.Keys(f.prompts))
}

func (f *Fake) countRequests(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, r := range f.history {
		if r.PromptName == name {
			n++
		}
	}
	return n
}
