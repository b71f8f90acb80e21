package provider

import (
	"fmt"

	"noa/model"
)

// NewProvider creates a provider from configuration. It is the single place
// that dispatches on the provider type.
func NewProvider(cfg Config) (model.Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.Type {
	case ProviderTypeOllama:
		return NewOllamaProvider(cfg.BaseURL, cfg.Model, cfg.Temperature)
	case ProviderTypeOpenAI:
		return NewOpenAIProvider(cfg.BaseURL, cfg.APIKey, cfg.Model, cfg.Temperature)
	default:
		return nil, fmt.Errorf("unknown provider type: %s", cfg.Type)
	}
}
