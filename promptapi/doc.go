// Package promptapi implements the Langfuse public prompt endpoint:
// GET {host}/api/public/v2/prompts/{name} with basic authentication.
// Use NewHTTPFetcher to obtain raw response bodies and Decode to turn them into a Prompt.
package promptapi
