package ai

import (
	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

const openRouterBaseURL = "https://openrouter.ai/api/v1"

// NewOpenRouterClient creates a client routed through the OpenRouter
// gateway. OpenRouter speaks the OpenAI wire protocol, so this reuses
// the OpenAI adapter with a different base URL.
func NewOpenRouterClient(apiKey string, logger *zap.Logger) *OpenAIClient {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = openRouterBaseURL

	return &OpenAIClient{
		name:   "openrouter",
		client: openai.NewClientWithConfig(cfg),
		logger: logger.Named("openrouter"),
	}
}
