package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/skosovsky/langfuse"
	"github.com/skosovsky/langfuse/langfusetest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, ctx context.Context, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	return out.String(), err
}

func fakeContext() (context.Context, *langfusetest.Fake) {
	fake := langfusetest.NewFake().AddPrompt("greeting", "Hello {{ name }}, welcome to {{team}}!")
	return langfuse.NewContext(context.Background(), fake), fake
}

func TestGet_Compiles(t *testing.T) {
	t.Parallel()
	ctx, fake := fakeContext()
	out, err := run(t, ctx, "get", "greeting", "--var", "name=Ada", "-v", "team=a=b")
	require.NoError(t, err)
	assert.Equal(t, "Hello Ada, welcome to a=b!\n", out)
	fake.RequirePromptRequestedTimes(t, "greeting", 1)
}

func TestGet_Raw(t *testing.T) {
	t.Parallel()
	ctx, _ := fakeContext()
	out, err := run(t, ctx, "get", "greeting", "--raw")
	require.NoError(t, err)
	assert.Equal(t, "Hello {{ name }}, welcome to {{team}}!\n", out)
}

func TestGet_MissingVariables(t *testing.T) {
	t.Parallel()
	ctx, _ := fakeContext()
	_, err := run(t, ctx, "get", "greeting", "--var", "name=Ada")
	require.ErrorIs(t, err, langfuse.ErrMissingVariables)
	assert.Contains(t, err.Error(), "'team' => 'your_value_here'")
}

func TestGet_InvalidVar(t *testing.T) {
	t.Parallel()
	ctx, fake := fakeContext()
	_, err := run(t, ctx, "get", "greeting", "--var", "novalue")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "want name=value")
	fake.RequireNoPromptsRequested(t)
}

func TestVars(t *testing.T) {
	t.Parallel()
	ctx, _ := fakeContext()
	out, err := run(t, ctx, "vars", "greeting")
	require.NoError(t, err)
	assert.Equal(t, "name\nteam\n", out)
}

func TestGet_RequiresName(t *testing.T) {
	t.Parallel()
	ctx, _ := fakeContext()
	_, err := run(t, ctx, "get")
	require.Error(t, err)
}

func TestGet_FromConfig(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != "pk" || pass != "sk" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		assert.Equal(t, "/api/public/v2/prompts/greeting", r.URL.Path)
		assert.Equal(t, "staging", r.URL.Query().Get("label"))
		_, _ = w.Write([]byte(`{"prompt":"Hi {{n}}"}`))
	}))
	defer srv.Close()
	t.Setenv("LANGFUSE_PUBLIC_KEY", "pk")
	t.Setenv("LANGFUSE_SECRET_KEY", "sk")
	t.Setenv("LANGFUSE_HOST", srv.URL)

	out, err := run(t, context.Background(), "get", "greeting", "--label", "staging", "--var", "n=Sam", "--log-level", "error")
	require.NoError(t, err)
	assert.Equal(t, "Hi Sam\n", out)

	_, err = run(t, context.Background(), "get", "greeting", "--log-level", "loud")
	require.Error(t, err)
}

func TestLoggerConfig(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		level    string
		format   string
		encoding string
		wantErr  string
	}{
		{"console", "debug", "console", "console", ""},
		{"default format", "warn", "", "console", ""},
		{"json", "info", "json", "json", ""},
		{"json upper", "error", "JSON", "json", ""},
		{"unknown format", "info", "xml", "", "invalid --log-format"},
		{"unknown level", "loud", "json", "", "invalid --log-level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg, err := loggerConfig(tt.level, tt.format)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.encoding, cfg.Encoding)
			assert.Equal(t, tt.level, cfg.Level.Level().String())
		})
	}
}

func TestGet_LogFormatRejected(t *testing.T) {
	t.Parallel()
	ctx, fake := fakeContext()
	_, err := run(t, ctx, "get", "greeting", "--raw", "--log-format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --log-format")
	fake.RequireNoPromptsRequested(t)

	out, err := run(t, ctx, "get", "greeting", "--raw", "--log-format", "json")
	require.NoError(t, err)
	assert.Equal(t, "Hello {{ name }}, welcome to {{team}}!\n", out)
}
