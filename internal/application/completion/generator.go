// Package completion wraps a completion backend behind a fail-soft
// text-generation API with usage and cost accounting.
package completion

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/smartdine/v2/internal/ports/outbound"
)

// jsonModeInstruction is injected as a system message when a caller
// requires a JSON-only reply.
const jsonModeInstruction = "You output ONLY JSON. No explanations."

// Generator issues completion calls against a single configured backend.
//
// Generate never returns an error: any provider failure is logged and
// degrades to an empty string, so a ranking failure produces "no
// recommendations" instead of aborting the whole request. Usage is
// recorded on the injected UsageTracker for successful calls only.
type Generator struct {
	client  outbound.CompletionClient
	model   string
	params  outbound.ChatParams
	usage   *UsageTracker
	limiter *rate.Limiter
	logger  *zap.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithRateLimit caps outbound provider calls per second.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(g *Generator) {
		g.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
}

// WithDefaults overrides the default generation parameters.
func WithDefaults(params outbound.ChatParams) Option {
	return func(g *Generator) { g.params = params }
}

// NewGenerator creates a generator over the given backend and model.
func NewGenerator(client outbound.CompletionClient, model string, usage *UsageTracker, logger *zap.Logger, opts ...Option) *Generator {
	g := &Generator{
		client: client,
		model:  model,
		params: outbound.ChatParams{
			MaxTokens:   4096,
			Temperature: 0.2,
			TopP:        1.0,
		},
		usage:  usage,
		logger: logger.Named("completion"),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Model returns the configured model identifier.
func (g *Generator) Model() string {
	return g.model
}

// CallOption configures one Generate call.
type CallOption func(*callSettings)

type callSettings struct {
	caller   string
	jsonMode bool
	history  []outbound.ChatMessage
	params   outbound.ChatParams
}

// WithCaller attributes the call's token usage to a logical caller name.
func WithCaller(name string) CallOption {
	return func(s *callSettings) { s.caller = name }
}

// WithJSONMode instructs the model to reply with JSON only.
func WithJSONMode() CallOption {
	return func(s *callSettings) { s.jsonMode = true }
}

// WithHistory prepends prior chat turns to the prompt.
func WithHistory(history []outbound.ChatMessage) CallOption {
	return func(s *callSettings) { s.history = history }
}

// WithMaxTokens overrides the response token cap for this call.
func WithMaxTokens(n int) CallOption {
	return func(s *callSettings) { s.params.MaxTokens = n }
}

// WithTemperature overrides the sampling temperature for this call.
func WithTemperature(t float32) CallOption {
	return func(s *callSettings) { s.params.Temperature = t }
}

// Generate runs one completion call and returns the generated text.
// On any failure (rate-limit wait, network, auth, malformed provider
// response) it logs and returns the empty string.
func (g *Generator) Generate(ctx context.Context, prompt string, opts ...CallOption) string {
	settings := callSettings{caller: "none", params: g.params}
	for _, opt := range opts {
		opt(&settings)
	}

	requestID := uuid.New().String()

	if g.limiter != nil {
		if err := g.limiter.Wait(ctx); err != nil {
			g.logger.Warn("Rate limiter wait aborted",
				zap.String("request_id", requestID),
				zap.Error(err))
			return ""
		}
	}

	messages := make([]outbound.ChatMessage, 0, len(settings.history)+2)
	messages = append(messages, settings.history...)
	if settings.jsonMode {
		messages = append(messages, outbound.ChatMessage{
			Role:    outbound.RoleSystem,
			Content: jsonModeInstruction,
		})
	}
	messages = append(messages, outbound.ChatMessage{
		Role:    outbound.RoleUser,
		Content: prompt,
	})

	start := time.Now()
	text, usage, err := g.client.Chat(ctx, messages, g.model, settings.params)
	if err != nil {
		g.logger.Warn("Completion call failed, degrading to empty result",
			zap.String("request_id", requestID),
			zap.String("provider", g.client.Name()),
			zap.String("model", g.model),
			zap.String("caller", settings.caller),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return ""
	}

	g.usage.Record(settings.caller, g.model, usage)

	g.logger.Debug("Completion call succeeded",
		zap.String("request_id", requestID),
		zap.String("provider", g.client.Name()),
		zap.String("caller", settings.caller),
		zap.Int("prompt_tokens", usage.PromptTokens),
		zap.Int("completion_tokens", usage.CompletionTokens),
		zap.Duration("elapsed", time.Since(start)))

	return text
}
