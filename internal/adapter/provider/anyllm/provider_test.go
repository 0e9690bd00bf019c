package anyllm

import (
	"io"
	"log/slog"
	"testing"

	anyllmlib "github.com/mozilla-ai/any-llm-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/langcoach-backend/internal/provider"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNew_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		backend string
		model   string
	}{
		{name: "empty backend", backend: "", model: "llama3.1:8b"},
		{name: "empty model", backend: "ollama", model: ""},
		{name: "unknown backend", backend: "watson", model: "x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p, err := New(tt.backend, tt.model, newTestLogger())
			require.Error(t, err)
			assert.Nil(t, p)
		})
	}
}

func TestNew_Ollama(t *testing.T) {
	t.Parallel()

	p, err := New("Ollama", "llama3.1:8b", newTestLogger())
	require.NoError(t, err)
	assert.Equal(t, "ollama", p.Name())
	assert.Equal(t, "llama3.1:8b", p.Model())
}

func TestBuildParams(t *testing.T) {
	t.Parallel()

	p := &Provider{model: "llama3.1:8b"}
	params := p.buildParams(provider.CompletionRequest{
		System:      "You are a coach.",
		Prompt:      "Analyze this.",
		Temperature: 0.3,
		MaxTokens:   1500,
	})

	assert.Equal(t, "llama3.1:8b", params.Model)
	require.Len(t, params.Messages, 2)
	assert.Equal(t, anyllmlib.RoleSystem, params.Messages[0].Role)
	assert.Equal(t, "You are a coach.", params.Messages[0].ContentString())
	assert.Equal(t, anyllmlib.RoleUser, params.Messages[1].Role)
	assert.Equal(t, "Analyze this.", params.Messages[1].ContentString())
	require.NotNil(t, params.Temperature)
	assert.InDelta(t, 0.3, *params.Temperature, 1e-9)
	require.NotNil(t, params.MaxTokens)
	assert.Equal(t, 1500, *params.MaxTokens)
}

func TestBuildParams_NoSystemNoLimits(t *testing.T) {
	t.Parallel()

	p := &Provider{model: "m"}
	params := p.buildParams(provider.CompletionRequest{Prompt: "hi"})

	require.Len(t, params.Messages, 1)
	assert.Equal(t, anyllmlib.RoleUser, params.Messages[0].Role)
	assert.Nil(t, params.Temperature)
	assert.Nil(t, params.MaxTokens)
}
