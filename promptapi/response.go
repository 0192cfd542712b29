package promptapi

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// TypeText is the prompt type whose "prompt" field is a plain template string.
const TypeText = "text"

// Prompt is the decoded subset of a Langfuse prompt response.
type Prompt struct {
	Name    string
	Version int
	Type    string
	Text    string // empty when the "prompt" field is absent or null
	Labels  []string
	Tags    []string
	Config  map[string]any
}

type wirePrompt struct {
	Name    string          `json:"name"`
	Version int             `json:"version"`
	Type    string          `json:"type"`
	Prompt  json.RawMessage `json:"prompt"`
	Labels  []string        `json:"labels"`
	Tags    []string        `json:"tags"`
	Config  map[string]any  `json:"config"`
}

// Decode parses a response body. A missing "prompt" field decodes to an empty Text.
// Chat prompts (type "chat" or an array "prompt") return ErrUnsupportedPromptType.
func Decode(data []byte) (*Prompt, error) {
	var w wirePrompt
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	if w.Type != "" && w.Type != TypeText {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedPromptType, w.Type)
	}
	p := &Prompt{
		Name:    w.Name,
		Version: w.Version,
		Type:    w.Type,
		Labels:  w.Labels,
		Tags:    w.Tags,
		Config:  w.Config,
	}
	raw := bytes.TrimSpace(w.Prompt)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return p, nil
	}
	if raw[0] != '"' {
		return nil, fmt.Errorf("%w: prompt field is not a string", ErrUnsupportedPromptType)
	}
	if err := json.Unmarshal(raw, &p.Text); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	return p, nil
}
