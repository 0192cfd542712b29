package langfuse

import (
	"maps"
	"slices"
)

// Metadata describes the prompt version served by Langfuse.
// Zero value for prompts built locally (e.g. by the fake client).
type Metadata struct {
	Version int
	Type    string // "text" for templates handled by this package
	Labels  []string
	Tags    []string
	Config  map[string]any
}

func (m Metadata) clone() Metadata {
	m.Labels = slices.Clone(m.Labels)
	m.Tags = slices.Clone(m.Tags)
	if m.Config != nil {
		m.Config = maps.Clone(m.Config)
	}
	return m
}

// Prompt is a fetched template bound to its name. It is immutable after construction,
// safe for concurrent use, and can be compiled any number of times.
type Prompt struct {
	name     string
	content  string
	required []string // pre-computed from content
	meta     Metadata
}

// PromptOption configures a Prompt at construction.
type PromptOption func(*Prompt)

// WithMetadata attaches version metadata to the prompt.
func WithMetadata(meta Metadata) PromptOption {
	return func(p *Prompt) {
		p.meta = meta.clone()
	}
}

// NewPrompt wraps template content under name.
func NewPrompt(name, content string, opts ...PromptOption) *Prompt {
	p := &Prompt{
		name:     name,
		content:  content,
		required: Scan(content),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name returns the prompt name.
func (p *Prompt) Name() string { return p.name }

// Raw returns the template exactly as fetched, without validation.
func (p *Prompt) Raw() string { return p.content }

// String implements fmt.Stringer and returns Raw.
func (p *Prompt) String() string { return p.Raw() }

// Variables returns the placeholder names the template requires, in order of first appearance.
func (p *Prompt) Variables() []string { return slices.Clone(p.required) }

// Metadata returns a copy of the prompt metadata.
func (p *Prompt) Metadata() Metadata { return p.meta.clone() }

// Compile validates vars against the template and substitutes every placeholder.
// Returns *MissingVariablesError when any placeholder has no value; the output never
// contains unresolved placeholders.
func (p *Prompt) Compile(vars Variables) (string, error) {
	if err := validateRequired(p.name, p.content, p.required, vars); err != nil {
		return "", err
	}
	return Substitute(p.content, vars), nil
}
