// Package manifest parses YAML prompt fixtures, used to seed langfusetest.Fake
// with the same prompts a Langfuse project serves.
//
// Format:
//
//	prompts:
//	  - name: greeting
//	    prompt: "Hello {{ name }}!"
//	    version: 2
//	    labels: [production]
package manifest

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/skosovsky/langfuse"
	"github.com/skosovsky/langfuse/promptapi"

	"gopkg.in/yaml.v3"
)

// ErrInvalidManifest indicates a malformed fixture file.
var ErrInvalidManifest = errors.New("manifest: fixture file is malformed")

// fileManifest is the YAML fixture shape.
type fileManifest struct {
	Prompts []struct {
		Name    string         `yaml:"name"`
		Prompt  string         `yaml:"prompt"`
		Version int            `yaml:"version"`
		Labels  []string       `yaml:"labels"`
		Tags    []string       `yaml:"tags"`
		Config  map[string]any `yaml:"config"`
	} `yaml:"prompts"`
}

// ParseBytes parses a YAML fixture and returns one Prompt per entry, in file order.
func ParseBytes(data []byte) ([]*langfuse.Prompt, error) {
	var m fileManifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidManifest, err)
	}
	return buildPrompts(&m)
}

// ParseFile reads and parses a fixture file.
func ParseFile(path string) ([]*langfuse.Prompt, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path is chosen by the test author
	if err != nil {
		return nil, fmt.Errorf("manifest: read file: %w", err)
	}
	return ParseBytes(data)
}

// ParseFS reads and parses a fixture from fs.FS (e.g. embed.FS).
func ParseFS(fsys fs.FS, name string) ([]*langfuse.Prompt, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("manifest: read fs: %w", err)
	}
	return ParseBytes(data)
}

func buildPrompts(m *fileManifest) ([]*langfuse.Prompt, error) {
	seen := make(map[string]bool, len(m.Prompts))
	out := make([]*langfuse.Prompt, 0, len(m.Prompts))
	for i, p := range m.Prompts {
		if err := promptapi.ValidateName(p.Name); err != nil {
			return nil, fmt.Errorf("%w: prompt %d: %w", ErrInvalidManifest, i, err)
		}
		if seen[p.Name] {
			return nil, fmt.Errorf("%w: prompt %d: duplicate name %q", ErrInvalidManifest, i, p.Name)
		}
		seen[p.Name] = true
		out = append(out, langfuse.NewPrompt(p.Name, p.Prompt, langfuse.WithMetadata(langfuse.Metadata{
			Version: p.Version,
			Type:    promptapi.TypeText,
			Labels:  p.Labels,
			Tags:    p.Tags,
			Config:  p.Config,
		})))
	}
	return out, nil
}
