package promptapi

import "errors"

// Sentinel errors for prompt API operations.
// Callers should use errors.Is to check.
var (
	// ErrFetchFailed wraps every failure to obtain a response body.
	ErrFetchFailed = errors.New("promptapi: fetch failed")
	// ErrHTTPStatus indicates an unexpected non-2xx status.
	ErrHTTPStatus = errors.New("promptapi: unexpected HTTP status")
	// ErrNotFound indicates the service has no prompt with the requested name, version or label.
	ErrNotFound = errors.New("promptapi: prompt not found")
	// ErrUnauthorized indicates the key pair was rejected (401/403).
	ErrUnauthorized = errors.New("promptapi: unauthorized")
	// ErrMalformedResponse indicates the body is not the expected JSON object.
	ErrMalformedResponse = errors.New("promptapi: malformed response body")
	// ErrUnsupportedPromptType indicates a non-text (e.g. chat) prompt.
	ErrUnsupportedPromptType = errors.New("promptapi: unsupported prompt type")
	// ErrInvalidName indicates an empty or unsafe prompt name.
	ErrInvalidName = errors.New("promptapi: invalid prompt name")
)
