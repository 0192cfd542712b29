package langfusetest

import (
	"slices"
	"testing"

	"github.com/skosovsky/langfuse"
)

// Install creates a Fake seeded with prompts, makes it the process-wide default client
// (langfuse.Default) and registers a cleanup that clears its history and restores the
// previous client. Tests calling Install must not use t.Parallel.
func Install(tb testing.TB, prompts map[string]string, opts ...FakeOption) *Fake {
	tb.Helper()
	f := NewFake(append(slices.Clone(opts), WithPrompts(prompts))...)
	restore := langfuse.SetDefault(f)
	tb.Cleanup(func() {
		f.ClearRequestHistory()
		restore()
	})
	return f
}
