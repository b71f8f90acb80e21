package provider

import (
	"context"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"noa/model"
)

// OpenAIProvider implements model.Provider against any OpenAI-compatible
// chat-completions endpoint.
type OpenAIProvider struct {
	client      openai.Client
	model       string
	baseURL     string
	temperature float64
}

// NewOpenAIProvider creates a provider for an OpenAI-compatible endpoint.
// The API key is required; local servers that ignore it still expect a
// placeholder value.
func NewOpenAIProvider(baseURL, apiKey, modelName string, temperature float64) (*OpenAIProvider, error) {
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}
	if modelName == "" {
		return nil, fmt.Errorf("model name is required for the openai provider")
	}

	client := openai.NewClient(
		option.WithBaseURL(baseURL),
		option.WithAPIKey(apiKey),
	)

	return &OpenAIProvider{
		client:      client,
		model:       modelName,
		baseURL:     baseURL,
		temperature: temperature,
	}, nil
}

// Generate sends a non-streaming chat-completions request and returns the
// assistant message content.
func (p *OpenAIProvider) Generate(ctx context.Context, system string, history []model.Message) (string, error) {
	params := openai.ChatCompletionNewParams{
		Messages:    ConvertToOpenAIMessages(system, history),
		Model:       openai.ChatModel(p.model),
		Temperature: openai.Float(p.temperature),
	}

	resp, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("openai chat: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai chat: response carries no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

func (p *OpenAIProvider) Model() string {
	return p.model
}

func (p *OpenAIProvider) Name() string {
	return string(ProviderTypeOpenAI)
}

func (p *OpenAIProvider) Ping(ctx context.Context) error {
	_, err := p.client.Models.List(ctx)
	if err != nil {
		return fmt.Errorf("OpenAI ping failed: %w", err)
	}
	return nil
}
