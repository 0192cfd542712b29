package langfuse

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Sentinel errors for prompt fetching and compilation.
// All use prefix "langfuse:" for identification. Callers should use errors.Is/errors.As.
var (
	ErrMissingVariables = errors.New("langfuse: required prompt variables not provided")
	ErrPromptFetch      = errors.New("langfuse: failed to fetch prompt")
	ErrNoClient         = errors.New("langfuse: no active prompt client")
	ErrInvalidName      = errors.New("langfuse: invalid prompt name")
	ErrInvalidPayload   = errors.New("langfuse: payload is not a struct with prompt tags")
)

// placeholderValue is shown in the suggested call for every missing variable.
const placeholderValue = "your_value_here"

// MissingVariablesError reports placeholders that Compile could not resolve.
// Use errors.Is(err, ErrMissingVariables) and errors.As(err, &missingErr) to inspect.
type MissingVariablesError struct {
	MissingVariables  []string  // scan order, no duplicates
	ProvidedVariables Variables // as passed to Compile
	PromptName        string
	PromptContent     string
	msg               string
}

func newMissingVariablesError(name, content string, missing []string, provided Variables) *MissingVariablesError {
	e := &MissingVariablesError{
		MissingVariables:  missing,
		ProvidedVariables: maps.Clone(provided),
		PromptName:        name,
		PromptContent:     content,
	}
	e.msg = e.render()
	return e
}

// Error implements error.
func (e *MissingVariablesError) Error() string {
	if e.msg != "" {
		return e.msg
	}
	return e.render()
}

// Unwrap returns ErrMissingVariables for errors.Is.
func (e *MissingVariablesError) Unwrap() error { return ErrMissingVariables }

// render builds the multi-line message with a copy-pasteable fix.
// Provided keys are listed sorted since Variables has no order.
func (e *MissingVariablesError) render() string {
	provided := slices.Sorted(maps.Keys(e.ProvidedVariables))
	providedList := "none"
	if len(provided) > 0 {
		providedList = strings.Join(provided, ", ")
	}
	noun := "variables"
	if len(e.MissingVariables) == 1 {
		noun = "variable"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Missing required variables for prompt '%s': %s", e.PromptName, strings.Join(e.MissingVariables, ", "))
	sb.WriteString("\n\n")
	fmt.Fprintf(&sb, "Variables provided: %s", providedList)
	sb.WriteString("\n\n")
	fmt.Fprintf(&sb, "Solution: Please provide values for the missing %s when compiling the fetched prompt:", noun)
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "client.FetchPrompt(ctx, '%s').Compile([", e.PromptName)
	for _, key := range provided {
		fmt.Fprintf(&sb, "\n    '%s' => '%s',", key, e.ProvidedVariables[key])
	}
	for _, key := range e.MissingVariables {
		fmt.Fprintf(&sb, "\n    '%s' => '%s',", key, placeholderValue)
	}
	sb.WriteString("\n])")
	return sb.String()
}

// FetchError wraps a transport, status or decode failure with the prompt name.
// errors.Is matches both ErrPromptFetch and the underlying cause.
type FetchError struct {
	PromptName string
	Err        error
}

// Error implements error.
func (e *FetchError) Error() string {
	return fmt.Sprintf("langfuse: fetch prompt %q: %v", e.PromptName, e.Err)
}

// Unwrap returns ErrPromptFetch and the cause for errors.Is/errors.As.
func (e *FetchError) Unwrap() []error { return []error{ErrPromptFetch, e.Err} }

// Compile-time checks that the typed errors implement error.
var (
	_ error = (*MissingVariablesError)(nil)
	_ error = (*FetchError)(nil)
)
