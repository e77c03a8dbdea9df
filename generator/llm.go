package generator

import "context"

// LLMClient abstracts the model provider so the pipeline can be exercised
// against a mock.
type LLMClient interface {
	// CompleteJSON runs one structured call constrained to the given JSON
	// schema and returns the raw JSON body of the response.
	CompleteJSON(ctx context.Context, prompt Prompt, schemaName string, schema map[string]any) ([]byte, error)
	// Complete runs one plain-text call.
	Complete(ctx context.Context, prompt Prompt) (string, error)
}

// LLMSettings is the provider configuration handed to concrete clients.
type LLMSettings struct {
	Provider    string
	Model       string
	APIKey      string
	BaseURL     string
	MaxAttempts int
}
