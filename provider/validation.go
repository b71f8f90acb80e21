package provider

import "fmt"

// Validate checks that the configuration names a usable provider before any
// network client gets built.
func (c Config) Validate() error {
	switch c.Type {
	case ProviderTypeOllama:
		// Empty base URL and model fall back to local defaults.
	case ProviderTypeOpenAI:
		if c.APIKey == "" {
			return fmt.Errorf("provider %q requires an API key", c.Type)
		}
		if c.Model == "" {
			return fmt.Errorf("provider %q requires a model name", c.Type)
		}
	case "":
		return fmt.Errorf("provider type is empty")
	default:
		return fmt.Errorf("unknown provider type: %s", c.Type)
	}

	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("temperature %v out of range [0, 2]", c.Temperature)
	}
	return nil
}
