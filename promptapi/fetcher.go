package promptapi

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"unicode"
)

// Fetcher fetches the raw JSON body of a prompt by name.
// HTTPFetcher is the production implementation; tests may substitute their own.
//
// Wrap failures in ErrFetchFailed so callers can use errors.Is.
type Fetcher interface {
	Fetch(ctx context.Context, name string, q Query) ([]byte, error)
}

// Query selects a specific prompt version or label. Zero value asks for the production label.
type Query struct {
	Version int    // 0 means unset
	Label   string // e.g. "production", "staging"
}

// Values encodes q as URL query parameters.
func (q Query) Values() url.Values {
	v := url.Values{}
	if q.Version > 0 {
		v.Set("version", strconv.Itoa(q.Version))
	}
	if q.Label != "" {
		v.Set("label", q.Label)
	}
	return v
}

// ValidateName checks that name is usable as a path segment.
// Slashes are allowed (Langfuse folders) and escaped by the fetcher.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty", ErrInvalidName)
	}
	if name == "." || name == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return fmt.Errorf("%w: %q contains control characters", ErrInvalidName, name)
		}
	}
	return nil
}

// PromptPath returns the API path for name, escaped as a single segment.
func PromptPath(name string) string {
	return "/api/public/v2/prompts/" + url.PathEscape(name)
}
