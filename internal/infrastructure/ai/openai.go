// Package ai provides the completion-backend adapters. Every backend
// implements outbound.CompletionClient and is selected once at startup
// through NewCompletionClient.
package ai

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/smartdine/v2/internal/ports/outbound"
)

// OpenAIClient talks to the OpenAI chat-completions API directly. The
// same adapter backs the OpenRouter and Azure variants, which differ
// only in client configuration.
type OpenAIClient struct {
	name   string
	client *openai.Client
	logger *zap.Logger
}

// NewOpenAIClient creates a direct OpenAI-backed client.
func NewOpenAIClient(apiKey string, logger *zap.Logger) *OpenAIClient {
	return &OpenAIClient{
		name:   "openai",
		client: openai.NewClient(apiKey),
		logger: logger.Named("openai"),
	}
}

// Name implements outbound.CompletionClient.
func (c *OpenAIClient) Name() string {
	return c.name
}

// Chat implements outbound.CompletionClient.
func (c *OpenAIClient) Chat(ctx context.Context, messages []outbound.ChatMessage, model string, params outbound.ChatParams) (string, outbound.TokenUsage, error) {
	req := openai.ChatCompletionRequest{
		Model:               model,
		Messages:            toOpenAIMessages(messages),
		MaxCompletionTokens: params.MaxTokens,
		Temperature:         params.Temperature,
		TopP:                params.TopP,
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", outbound.TokenUsage{}, fmt.Errorf("%s chat completion: %w", c.name, err)
	}
	if len(resp.Choices) == 0 {
		return "", outbound.TokenUsage{}, fmt.Errorf("%s chat completion: no choices returned", c.name)
	}

	usage := outbound.TokenUsage{
		PromptTokens:     resp.Usage.PromptTokens,
		CompletionTokens: resp.Usage.CompletionTokens,
		TotalTokens:      resp.Usage.TotalTokens,
	}

	c.logger.Debug("Chat completion succeeded",
		zap.String("model", model),
		zap.Int("total_tokens", usage.TotalTokens),
		zap.String("finish_reason", string(resp.Choices[0].FinishReason)))

	return resp.Choices[0].Message.Content, usage, nil
}

func toOpenAIMessages(messages []outbound.ChatMessage) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, len(messages))
	for i, m := range messages {
		out[i] = openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		}
	}
	return out
}
