// Package provider holds the request and result types exchanged with text
// generation adapters.
package provider

// CompletionRequest is a single-shot generation request.
type CompletionRequest struct {
	// System is an optional instruction sent ahead of Prompt.
	System string
	Prompt string

	// Temperature in [0, 2]. Zero leaves the backend default.
	Temperature float64
	// MaxTokens caps generated tokens. Zero leaves the backend default.
	MaxTokens int
}

// CompletionResult is the raw text produced by the model plus token accounting.
type CompletionResult struct {
	Text             string
	Model            string
	PromptTokens     int
	CompletionTokens int
}
