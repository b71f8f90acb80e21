// Package provider implements the LLM backends the agent can talk to.
//
// The agent drives any chat-capable model through the model.Provider
// interface. Two implementations exist: Ollama's native API for local models,
// and the OpenAI chat-completions API for OpenAI-compatible servers
// (llama.cpp, vLLM, LM Studio, or the hosted service itself). Both are
// strictly non-streaming: tool-call extraction needs the complete assistant
// message before it can look for the JSON payload.
//
// The Provider interface itself lives in the model package
// (model/provider.go) to avoid import cycles; this package implements it.
package provider

// ProviderType identifies the provider implementation.
type ProviderType string

const (
	ProviderTypeOllama ProviderType = "ollama"
	ProviderTypeOpenAI ProviderType = "openai"
)

// Config holds everything needed to construct a provider.
type Config struct {
	Type        ProviderType
	BaseURL     string
	APIKey      string
	Model       string
	Temperature float64
}
