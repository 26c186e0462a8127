package llm

import (
	"context"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"

	"github.com/huimingz/aicommit-go/internal/config"
)

const (
	DeepseekDefaultBaseURL = "https://api.deepseek.com/v1"
	OllamaDefaultBaseURL   = "http://localhost:11434/v1"
	GrokDefaultBaseURL     = "https://api.x.ai/v1"
)

// defaultBaseURLs lists OpenAI-compatible backends with a fixed endpoint.
// openai itself uses the client's default.
var defaultBaseURLs = map[string]string{
	"openai":   "",
	"deepseek": DeepseekDefaultBaseURL,
	"ollama":   OllamaDefaultBaseURL,
	"grok":     GrokDefaultBaseURL,
}

// OpenAIProvider implements Provider for OpenAI and every backend speaking
// the same chat completions API (Deepseek, Ollama, Grok)
type OpenAIProvider struct {
	name string
	cfg  config.ModelConfig
}

// NewOpenAIProvider creates a provider for the named OpenAI-compatible backend
func NewOpenAIProvider(name string, cfg config.ModelConfig) *OpenAIProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURLs[name]
	}

	// Ollama ignores the key but the client refuses an empty one
	if name == "ollama" && cfg.APIKey == "" {
		cfg.APIKey = "ollama"
	}
	return &OpenAIProvider{name: name, cfg: cfg}
}

// Name returns the provider name
func (p *OpenAIProvider) Name() string {
	return p.name
}

// GetConfig returns the model configuration
func (p *OpenAIProvider) GetConfig() config.ModelConfig {
	return p.cfg
}

// CreateChatModel creates an Eino ChatModel over the chat completions API
func (p *OpenAIProvider) CreateChatModel(ctx context.Context) (model.ChatModel, error) {
	cfg := &openai.ChatModelConfig{
		APIKey:  p.cfg.APIKey,
		Model:   p.cfg.Model,
		BaseURL: p.cfg.BaseURL,
	}

	return openai.NewChatModel(ctx, cfg)
}
