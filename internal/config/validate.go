package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/heartmarshall/langcoach-backend/internal/domain"
)

// SupportedLLMProviders lists the values accepted for llm.provider.
var SupportedLLMProviders = []string{
	"ollama", "anthropic", "openai", "gemini", "mistral", "groq", "deepseek", "llamacpp", "llamafile",
}

// providers that cannot run without a key.
var keyedLLMProviders = []string{"anthropic", "openai", "gemini", "mistral", "groq", "deepseek"}

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}

	if err := c.LLM.validate(); err != nil {
		return fmt.Errorf("llm: %w", err)
	}

	if err := c.Feedback.validate(); err != nil {
		return fmt.Errorf("feedback: %w", err)
	}

	if c.RateLimit.Enabled && c.RateLimit.FeedbackPerMin <= 0 {
		return fmt.Errorf("rate_limit.feedback_per_min must be > 0 (got %d)", c.RateLimit.FeedbackPerMin)
	}

	return nil
}

func (l *LLMConfig) validate() error {
	l.Provider = strings.ToLower(strings.TrimSpace(l.Provider))
	if !slices.Contains(SupportedLLMProviders, l.Provider) {
		return fmt.Errorf("provider %q is not supported; supported: %s", l.Provider, strings.Join(SupportedLLMProviders, ", "))
	}
	if strings.TrimSpace(l.Model) == "" {
		return fmt.Errorf("model is required")
	}
	if slices.Contains(keyedLLMProviders, l.Provider) && l.APIKey == "" {
		return fmt.Errorf("api_key is required for provider %q", l.Provider)
	}
	if l.Temperature < 0 || l.Temperature > 2 {
		return fmt.Errorf("temperature must be in [0, 2] (got %v)", l.Temperature)
	}
	if l.MaxOutputTokens <= 0 {
		return fmt.Errorf("max_output_tokens must be > 0 (got %d)", l.MaxOutputTokens)
	}
	if l.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0 (got %s)", l.Timeout)
	}
	return nil
}

func (f *FeedbackConfig) validate() error {
	if f.MaxTextLength <= 0 {
		return fmt.Errorf("max_text_length must be > 0 (got %d)", f.MaxTextLength)
	}
	if f.MaxContextLength < 0 {
		return fmt.Errorf("max_context_length must be >= 0 (got %d)", f.MaxContextLength)
	}
	if !domain.Language(f.DefaultLanguage).IsValid() {
		return fmt.Errorf("default_language %q is not supported", f.DefaultLanguage)
	}
	if !domain.UserLevel(f.DefaultLevel).IsValid() {
		return fmt.Errorf("default_level %q is not a valid level", f.DefaultLevel)
	}
	return nil
}
