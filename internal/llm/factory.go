package llm

import (
	"fmt"

	"github.com/huimingz/aicommit-go/internal/config"
)

// ProviderFactory creates LLM providers based on configuration
type ProviderFactory struct{}

// NewProviderFactory creates a new ProviderFactory
func NewProviderFactory() *ProviderFactory {
	return &ProviderFactory{}
}

// Create creates a Provider based on the model configuration
func (f *ProviderFactory) Create(cfg config.ModelConfig) (Provider, error) {
	if cfg.Provider == "gemini" {
		return NewGeminiProvider(cfg), nil
	}
	if _, ok := defaultBaseURLs[cfg.Provider]; ok {
		return NewOpenAIProvider(cfg.Provider, cfg), nil
	}
	return nil, fmt.Errorf("unsupported provider: %s", cfg.Provider)
}

// CreateWithKey creates a Provider for the runtime configuration using apiKey
func (f *ProviderFactory) CreateWithKey(appCfg *config.Config, apiKey string) (Provider, error) {
	modelCfg := appCfg.Model
	modelCfg.APIKey = apiKey
	if err := modelCfg.Validate(); err != nil {
		return nil, err
	}
	return f.Create(modelCfg)
}
