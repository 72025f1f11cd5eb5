package core

import "context"

type (
	// CompletionOpts configures a single completion request.
	CompletionOpts struct {
		MaxTokens   int     // 0 = provider default
		Temperature float64 // 0.0-2.0
		Model       string  // overrides the provider's model when set
		Format      string  // "json" for structured output, empty for plain text
		System      string  // system prompt (optional)
	}

	// LLMProvider is any remote service that can complete a prompt.
	LLMProvider interface {
		Complete(ctx context.Context, prompt string, opts CompletionOpts) (string, error)
		// Name returns a human-readable provider name (e.g., "google/gemini-2.5-flash").
		Name() string
	}
)
