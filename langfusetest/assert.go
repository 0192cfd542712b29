package langfusetest

import "testing"

// AssertPromptRequested returns an *AssertionError unless name was fetched at least once.
func (f *Fake) AssertPromptRequested(name string) error {
	if f.countRequests(name) == 0 {
		return assertionf("expected prompt '%s' to be requested, but it was not", name)
	}
	return nil
}

// AssertPromptRequestedTimes returns an *AssertionError unless name was fetched exactly times.
func (f *Fake) AssertPromptRequestedTimes(name string, times int) error {
	if n := f.countRequests(name); n != times {
		return assertionf("expected prompt '%s' to be requested %d times, but it was requested %d times", name, times, n)
	}
	return nil
}

// AssertNoPromptsRequested returns an *AssertionError if any prompt was fetched.
func (f *Fake) AssertNoPromptsRequested() error {
	f.mu.Lock()
	n := len(f.history)
	f.mu.Unlock()
	if n > 0 {
		return assertionf("expected no prompts to be requested, but %d were requested", n)
	}
	return nil
}

// RequirePromptRequested fails tb immediately if name was never fetched.
func (f *Fake) RequirePromptRequested(tb testing.TB, name string) {
	tb.Helper()
	if err := f.AssertPromptRequested(name); err != nil {
		tb.Fatal(err)
	}
}

// RequirePromptRequestedTimes fails tb immediately unless name was fetched exactly times.
func (f *Fake) RequirePromptRequestedTimes(tb testing.TB, name string, times int) {
	tb.Helper()
	if err := f.AssertPromptRequestedTimes(name, times); err != nil {
		tb.Fatal(err)
	}
}

// RequireNoPromptsRequested fails tb immediately if any prompt was fetched.
func (f *Fake) RequireNoPromptsRequested(tb testing.TB) {
	tb.Helper()
	if err := f.AssertNoPromptsRequested(); err != nil {
		tb.Fatal(err)
	}
}
