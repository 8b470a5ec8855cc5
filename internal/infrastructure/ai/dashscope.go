package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/smartdine/v2/internal/ports/outbound"
)

const dashScopeEndpoint = "https://dashscope.aliyuncs.com/api/v1/services/aigc/text-generation/generation"

// DashScopeClient talks to Alibaba's DashScope text-generation API, the
// alternate hosted-model variant. DashScope uses a prompt-oriented
// request shape rather than chat messages, and does not report token
// usage; usage comes back as zeros.
type DashScopeClient struct {
	apiKey string
	client *http.Client
	logger *zap.Logger
}

// NewDashScopeClient creates a DashScope-backed client.
func NewDashScopeClient(apiKey string, logger *zap.Logger) *DashScopeClient {
	return &DashScopeClient{
		apiKey: apiKey,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger.Named("dashscope"),
	}
}

// Name implements outbound.CompletionClient.
func (c *DashScopeClient) Name() string {
	return "dashscope"
}

type dashScopeRequest struct {
	Model      string              `json:"model"`
	Input      dashScopeInput      `json:"input"`
	Parameters dashScopeParameters `json:"parameters"`
}

type dashScopeInput struct {
	Prompt string `json:"prompt"`
}

type dashScopeParameters struct {
	MaxTokens   int     `json:"max_tokens,omitempty"`
	Temperature float32 `json:"temperature,omitempty"`
	TopP        float32 `json:"top_p,omitempty"`
}

type dashScopeResponse struct {
	Output struct {
		Text string `json:"text"`
	} `json:"output"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Chat implements outbound.CompletionClient. System instructions are
// folded into the prompt since the endpoint takes a single prompt body.
func (c *DashScopeClient) Chat(ctx context.Context, messages []outbound.ChatMessage, model string, params outbound.ChatParams) (string, outbound.TokenUsage, error) {
	reqBody := dashScopeRequest{
		Model: model,
		Input: dashScopeInput{Prompt: flattenMessages(messages)},
		Parameters: dashScopeParameters{
			MaxTokens:   params.MaxTokens,
			Temperature: params.Temperature,
			TopP:        params.TopP,
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", outbound.TokenUsage{}, fmt.Errorf("dashscope: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, dashScopeEndpoint, bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", outbound.TokenUsage{}, fmt.Errorf("dashscope: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", outbound.TokenUsage{}, fmt.Errorf("dashscope: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", outbound.TokenUsage{}, fmt.Errorf("dashscope: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", outbound.TokenUsage{}, fmt.Errorf("dashscope: API error %d: %s", resp.StatusCode, string(body))
	}

	var parsed dashScopeResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", outbound.TokenUsage{}, fmt.Errorf("dashscope: unmarshal response: %w", err)
	}
	if parsed.Code != "" {
		return "", outbound.TokenUsage{}, fmt.Errorf("dashscope: API error %s: %s", parsed.Code, parsed.Message)
	}

	c.logger.Debug("Text generation succeeded", zap.String("model", model))

	return parsed.Output.Text, outbound.TokenUsage{}, nil
}

// flattenMessages joins chat messages into one prompt, keeping system
// instructions ahead of the user content.
func flattenMessages(messages []outbound.ChatMessage) string {
	var buf bytes.Buffer
	for _, m := range messages {
		if buf.Len() > 0 {
			buf.WriteString("\n\n")
		}
		buf.WriteString(m.Content)
	}
	return buf.String()
}
