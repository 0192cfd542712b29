package langfusetest

import (
	"errors"
	"fmt"
)

// Sentinel errors for fake client operations.
var (
	// ErrPromptNotFound is returned by FetchPrompt for unregistered names when ThrowOnMissing is enabled.
	ErrPromptNotFound = errors.New("langfusetest: prompt not found in fake")
	// ErrAssertion marks a failed request-history assertion.
	ErrAssertion = errors.New("langfusetest: assertion failed")
)

// AssertionError describes a request-history assertion that did not hold.
// errors.Is(err, ErrAssertion) reports true.
type AssertionError struct {
	Message string
}

// Error implements error.
func (e *AssertionError) Error() string {
	return fmt.Sprintf("langfusetest: %s", e.Message)
}

// Unwrap returns ErrAssertion for errors.Is.
func (e *AssertionError) Unwrap() error { return ErrAssertion }

func assertionf(format string, args ...any) error {
	return &AssertionError{Message: fmt.Sprintf(format, args...)}
}
