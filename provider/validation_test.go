package provider

import "testing"

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name:    "ollama with defaults",
			cfg:     Config{Type: ProviderTypeOllama, Temperature: 0.2},
			wantErr: false,
		},
		{
			name:    "openai without api key",
			cfg:     Config{Type: ProviderTypeOpenAI, Model: "gpt-4o-mini"},
			wantErr: true,
		},
		{
			name:    "openai without model",
			cfg:     Config{Type: ProviderTypeOpenAI, APIKey: "sk-test"},
			wantErr: true,
		},
		{
			name:    "openai complete",
			cfg:     Config{Type: ProviderTypeOpenAI, APIKey: "sk-test", Model: "gpt-4o-mini", Temperature: 0.7},
			wantErr: false,
		},
		{
			name:    "empty type",
			cfg:     Config{},
			wantErr: true,
		},
		{
			name:    "unknown type",
			cfg:     Config{Type: "bedrock"},
			wantErr: true,
		},
		{
			name:    "temperature out of range",
			cfg:     Config{Type: ProviderTypeOllama, Temperature: 3.5},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewProviderUnknownType(t *testing.T) {
	if _, err := NewProvider(Config{Type: "bedrock"}); err == nil {
		t.Fatal("expected error for unknown provider type")
	}
}

func TestNewProviderOllama(t *testing.T) {
	p, err := NewProvider(Config{Type: ProviderTypeOllama, BaseURL: "http://localhost:11434", Model: "llama3.1:latest", Temperature: 0.2})
	if err != nil {
		t.Fatalf("NewProvider: %v", err)
	}
	if p.Name() != "ollama" {
		t.Errorf("Name() = %q", p.Name())
	}
	if p.Model() != "llama3.1:latest" {
		t.Errorf("Model() = %q", p.Model())
	}
}
