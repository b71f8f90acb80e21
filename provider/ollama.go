package provider

import (
	"context"
	"fmt"

	"noa/model"
	"noa/ollama"
)

// OllamaProvider adapts ollama.Client to the model.Provider interface.
type OllamaProvider struct {
	client      *ollama.Client
	temperature float64
}

// NewOllamaProvider creates a provider backed by a local Ollama server.
// Empty baseURL and model fall back to the ollama package defaults.
func NewOllamaProvider(baseURL, modelName string, temperature float64) (*OllamaProvider, error) {
	client, err := ollama.NewClient(baseURL, modelName)
	if err != nil {
		return nil, fmt.Errorf("failed to create Ollama client: %w", err)
	}

	return &OllamaProvider{
		client:      client,
		temperature: temperature,
	}, nil
}

// Generate sends the system prompt plus the conversation history and returns
// the complete assistant reply.
func (p *OllamaProvider) Generate(ctx context.Context, system string, history []model.Message) (string, error) {
	messages := ConvertToOllamaMessages(system, history)
	return p.client.Chat(ctx, messages, p.temperature)
}

func (p *OllamaProvider) Model() string {
	return p.client.GetModel()
}

func (p *OllamaProvider) Name() string {
	return string(ProviderTypeOllama)
}

func (p *OllamaProvider) Ping(ctx context.Context) error {
	return p.client.Ping(ctx)
}
