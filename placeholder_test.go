package langfuse

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScan(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		template string
		want     []string
	}{
		{"no markers", "Static text", nil},
		{"empty", "", nil},
		{"single", "Hello {{name}}!", []string{"name"}},
		{"whitespace trimmed", "Hello {{  name }}!", []string{"name"}},
		{"first-seen order", "{{b}} {{a}} {{c}}", []string{"b", "a", "c"}},
		{"duplicates removed", "Hello {{name}}! Hi {{ name }}.", []string{"name"}},
		{"interior space kept", "{{ first name }}", []string{"first name"}},
		{"blank marker names empty", "{{   }} {{x}} {{ }}", []string{"", "x"}},
		{"unclosed", "partial {{name", nil},
		{"single brace", "{name} and {{ok}}", []string{"ok"}},
		{"stops at first close", "{{a}}}}", []string{"a"}},
		{"case sensitive", "{{Name}} {{name}}", []string{"Name", "name"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Scan(tt.template)
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestScan_Idempotent(t *testing.T) {
	t.Parallel()
	tpl := "{{x}} {{ y }} {{x}} {{z}}"
	assert.Equal(t, Scan(tpl), Scan(tpl))
}

func TestValidate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		template    string
		provided    Variables
		wantMissing []string
	}{
		{"all provided", "Hi {{a}} {{b}}", Variables{"a": "1", "b": "2"}, nil},
		{"extra ignored", "Hi {{a}}", Variables{"a": "x", "b": "y"}, nil},
		{"empty value counts", "Hi {{a}}", Variables{"a": ""}, nil},
		{"no markers nil vars", "Static", nil, nil},
		{"one missing", "Hello {{name}}! Your email is {{email}}.", Variables{"name": "John"}, []string{"email"}},
		{"all missing in order", "{{name}} {{email}} {{phone}}", Variables{}, []string{"name", "email", "phone"}},
		{"case sensitive", "{{Name}}", Variables{"name": "x"}, []string{"Name"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := Validate("p", tt.template, tt.provided)
			if tt.wantMissing == nil {
				require.NoError(t, err)
				return
			}
			var missingErr *MissingVariablesError
			require.ErrorAs(t, err, &missingErr)
			require.ErrorIs(t, err, ErrMissingVariables)
			assert.Equal(t, tt.wantMissing, missingErr.MissingVariables)
			assert.Equal(t, "p", missingErr.PromptName)
			assert.Equal(t, tt.template, missingErr.PromptContent)
		})
	}
}

func TestSubstitute(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		template string
		vars     Variables
		want     string
	}{
		{"duplicates", "Hello {{name}}! Hi {{name}}.", Variables{"name": "Jo"}, "Hello Jo! Hi Jo."},
		{"whitespace", "Hello {{ name }}!", Variables{"name": "Jo"}, "Hello Jo!"},
		{"mixed whitespace", "{{name}} {{  name\t}}", Variables{"name": "Jo"}, "Jo Jo"},
		{"extra vars", "Hi {{a}}", Variables{"a": "x", "b": "y"}, "Hi x"},
		{"static", "Static text", Variables{}, "Static text"},
		{"empty value", "[{{a}}]", Variables{"a": ""}, "[]"},
		{"no recursive substitution", "{{a}} {{b}}", Variables{"a": "{{b}}", "b": "B"}, "{{b}} B"},
		{"regex metachars in value", "{{a}}", Variables{"a": "$1 \\ $$"}, "$1 \\ $$"},
		{"regex metachars in name", "{{a.b}} {{a+b}}", Variables{"a.b": "dot", "a+b": "plus"}, "dot plus"},
		{"unprovided left", "{{a}} {{b}}", Variables{"a": "A"}, "A {{b}}"},
		{"blank marker", "{{ }}{{a}}{{   }}", Variables{"": "x", "a": "A"}, "xAx"},
		{"nil vars", "Hi {{a}}", nil, "Hi {{a}}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Substitute(tt.template, tt.vars))
		})
	}
}

func TestSubstitute_NoMarkersRemainAndRestUnchanged(t *testing.T) {
	t.Parallel()
	tpl := "Dear {{ title }} {{last}},\n\nYour order {{order}} ships {{ when }}. -- {{last}}"
	vars := Variables{"title": "Dr.", "last": "Who", "order": "#42", "when": "today"}
	out := Substitute(tpl, vars)
	assert.Equal(t, "Dear Dr. Who,\n\nYour order #42 ships today. -- Who", out)
	for name := range vars {
		assert.NotContains(t, out, "{{"+name)
	}
	assert.False(t, strings.Contains(out, "{{"))
}
