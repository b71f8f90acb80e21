package model

import "context"

// Provider abstracts LLM provider implementations (Ollama, OpenAI-compatible)
// using provider-agnostic types from NOA's model layer.
//
// This interface is defined in the model package (not provider package) to avoid
// import cycles: provider implementations can import model, and the agent can use
// the Provider interface without importing the provider package.
type Provider interface {
	// Generate sends the system prompt plus the full conversation history and
	// returns the assistant's complete reply. Generation is synchronous: the
	// agent loop always needs the whole reply before it can decide whether the
	// model asked for a tool.
	Generate(ctx context.Context, system string, history []Message) (string, error)

	// Model returns the currently selected model name.
	Model() string

	// Name returns the provider identifier ("ollama", "openai").
	Name() string

	// Ping checks if the provider endpoint is reachable.
	Ping(ctx context.Context) error
}
