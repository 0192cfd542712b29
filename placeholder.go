package langfuse

import (
	"regexp"
	"strings"
)

// Variables maps placeholder names to substitution values.
// A key mapped to an empty string still counts as provided.
type Variables map[string]string

// placeholderPattern matches {{ name }} markers. The inner text stops at the first '}',
// so markers never nest and there is no escape syntax.
var placeholderPattern = regexp.MustCompile(`\{\{([^}]+)\}\}`)

// Scan returns the distinct placeholder names referenced by template in order of first appearance.
// Names are trimmed of surrounding whitespace, so a blank marker such as {{ }} names "".
func Scan(template string) []string {
	matches := placeholderPattern.FindAllStringSubmatch(template, -1)
	if len(matches) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(matches))
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		name := strings.TrimSpace(m[1])
		if seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}

// Validate checks that every placeholder in template has a key in provided.
// Returns *MissingVariablesError listing absent names in scan order; extra keys are ignored.
func Validate(name, template string, provided Variables) error {
	return validateRequired(name, template, Scan(template), provided)
}

func validateRequired(name, template string, required []string, provided Variables) error {
	var missing []string
	for _, v := range required {
		if _, ok := provided[v]; !ok {
			missing = append(missing, v)
		}
	}
	if len(missing) > 0 {
		return newMissingVariablesError(name, template, missing, provided)
	}
	return nil
}

// Substitute replaces every {{ name }} marker whose name is in provided with its value.
// Values are inserted verbatim and never re-scanned. Markers for names absent from provided
// are left untouched, so callers should Validate first.
func Substitute(template string, provided Variables) string {
	if len(provided) == 0 {
		return template
	}
	return placeholderPattern.ReplaceAllStringFunc(template, func(marker string) string {
		name := strings.TrimSpace(marker[2 : len(marker)-2])
		if v, ok := provided[name]; ok {
			return v
		}
		return marker
	})
}
