package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino/schema"

	"github.com/huimingz/aicommit-go/internal/llm"
	"github.com/huimingz/aicommit-go/internal/log"
)

// errEmptyCompletion marks a response without any text
var errEmptyCompletion = errors.New("model returned an empty message")

// RemoteError wraps any failure of the text-generation backend
type RemoteError struct {
	Provider string
	Model    string
	Err      error
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%s (%s) request failed: %v", e.Provider, e.Model, e.Err)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// Generator turns a prompt into raw commit message text
type Generator struct {
	provider llm.Provider
}

// NewGenerator creates a Generator backed by provider
func NewGenerator(provider llm.Provider) (*Generator, error) {
	if provider == nil {
		return nil, fmt.Errorf("LLM provider is not configured")
	}
	return &Generator{provider: provider}, nil
}

// Generate sends prompt as the single user message and returns the
// completion verbatim. There is no retry; failures come back as *RemoteError.
func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	providerName := g.provider.Name()
	modelName := g.provider.GetConfig().Model
	remoteErr := func(err error) error {
		return &RemoteError{Provider: providerName, Model: modelName, Err: err}
	}

	log.Debug("Using LLM: provider=%s, model=%s", providerName, modelName)
	log.DebugText("Prompt", prompt, 2000)

	chatModel, err := g.provider.CreateChatModel(ctx)
	if err != nil {
		return "", remoteErr(fmt.Errorf("failed to create chat model: %w", err))
	}
	if chatModel == nil {
		return "", remoteErr(fmt.Errorf("chat model is nil"))
	}

	startTime := time.Now()
	resp, err := chatModel.Generate(ctx, []*schema.Message{schema.UserMessage(prompt)})
	log.DebugDuration("Generation", time.Since(startTime))
	if err != nil {
		return "", remoteErr(err)
	}
	if resp == nil || strings.TrimSpace(resp.Content) == "" {
		return "", remoteErr(errEmptyCompletion)
	}

	if resp.ResponseMeta != nil && resp.ResponseMeta.Usage != nil {
		usage := resp.ResponseMeta.Usage
		log.DebugTokenUsage(usage.PromptTokens, usage.CompletionTokens, usage.TotalTokens)
	}

	return resp.Content, nil
}
