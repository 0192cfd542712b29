package promptapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestValidateName(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		valid bool
	}{
		{"", false},
		{".", false},
		{"..", false},
		{"x", true},
		{"test-prompt", true},
		{"support_agent", true},
		{"folder/sub prompt", true},
		{"with\nnewline", false},
		{"tab\there", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateName(tt.name)
			if tt.valid {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrInvalidName)
		})
	}
}

func TestPromptPath(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "/api/public/v2/prompts/test-prompt", PromptPath("test-prompt"))
	assert.Equal(t, "/api/public/v2/prompts/folder%2Fsummary", PromptPath("folder/summary"))
	assert.Equal(t, "/api/public/v2/prompts/a%20b", PromptPath("a b"))
}

func TestQuery_Values(t *testing.T) {
	t.Parallel()
	assert.Empty(t, Query{}.Values().Encode())
	assert.Equal(t, "version=3", Query{Version: 3}.Values().Encode())
	assert.Equal(t, "label=staging", Query{Label: "staging"}.Values().Encode())
	assert.Equal(t, "label=prod&version=1", Query{Version: 1, Label: "prod"}.Values().Encode())
}
