package app

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/langcoach-backend/internal/adapter/provider/ollama"
	"github.com/heartmarshall/langcoach-backend/internal/config"
	"github.com/heartmarshall/langcoach-backend/internal/provider"
)

func TestNewModelBackend(t *testing.T) {
	t.Parallel()

	log := slog.New(slog.DiscardHandler)

	tests := []struct {
		name       string
		cfg        config.LLMConfig
		wantName   string
		wantOllama bool
		wantErr    bool
	}{
		{
			name:       "ollama default",
			cfg:        config.LLMConfig{Provider: "ollama", Model: "llama3.1:8b"},
			wantName:   "ollama",
			wantOllama: true,
		},
		{
			name:     "anthropic",
			cfg:      config.LLMConfig{Provider: "anthropic", Model: "claude-haiku-4-5", APIKey: "sk-ant-test"},
			wantName: "anthropic",
		},
		{
			name:     "openai through anyllm",
			cfg:      config.LLMConfig{Provider: "openai", Model: "gpt-4o-mini", APIKey: "sk-test"},
			wantName: "openai",
		},
		{
			name:    "unknown backend",
			cfg:     config.LLMConfig{Provider: "watson", Model: "x"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			b, err := NewModelBackend(tt.cfg, log)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, b.Completer.Name())

			if tt.wantOllama {
				_, ok := b.Checker.(*ollama.Checker)
				assert.True(t, ok, "ollama backend should be probed over HTTP")
				return
			}
			st := b.Checker.Check(context.Background())
			assert.True(t, st.Healthy)
			assert.Equal(t, tt.wantName, st.Service)
			assert.Equal(t, []string{tt.cfg.Model}, st.Models)
			_, ok := b.Checker.(provider.StaticChecker)
			assert.True(t, ok)
		})
	}
}
