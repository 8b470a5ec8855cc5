// Package outbound defines the interfaces for outbound ports (secondary/driven adapters)
// These are the interfaces that the application uses to interact with external systems
package outbound

import "context"

// Chat message roles, mirroring the chat-completion wire format.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is one role-tagged message in a completion exchange.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatParams carries per-call generation parameters.
type ChatParams struct {
	MaxTokens   int
	Temperature float32
	TopP        float32
}

// TokenUsage is the provider-reported token accounting for one call.
// Providers that do not report usage return the zero value.
type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// CompletionClient is the single capability every completion backend must
// provide: send role-tagged messages to a model, get text and usage back.
// Backends are interchangeable; selection happens once at startup.
type CompletionClient interface {
	// Chat performs one blocking completion call.
	Chat(ctx context.Context, messages []ChatMessage, model string, params ChatParams) (string, TokenUsage, error)

	// Name identifies the backend for logging and usage attribution.
	Name() string
}
