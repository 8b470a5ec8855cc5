package completion

import (
	"sync"

	"github.com/smartdine/v2/internal/ports/outbound"
)

// modelPrice holds per-token prices in dollars.
type modelPrice struct {
	input  float64
	output float64
}

// Known model prices. Unknown models get sentinel negative rates so a
// misconfigured model id shows up as negative cost in aggregation
// instead of being silently absorbed.
var modelPrices = map[string]modelPrice{
	"gpt-4o":       {input: 2.5e-6, output: 10e-6},
	"gpt-4.1":      {input: 2e-6, output: 8e-6},
	"o3-mini":      {input: 1.1e-6, output: 4.4e-6},
	"o4-mini":      {input: 1.1e-6, output: 4.4e-6},
	"gpt-35-turbo": {input: 1e-6, output: 2e-6},
}

var unknownModelPrice = modelPrice{input: -1e-6, output: -2e-6}

func priceFor(model string) modelPrice {
	if p, ok := modelPrices[model]; ok {
		return p
	}
	return unknownModelPrice
}

// CallerStats aggregates token usage attributed to one logical caller.
type CallerStats struct {
	Calls       int `json:"calls"`
	TotalTokens int `json:"totalTokens"`
}

// UsageTracker accumulates completion cost and per-caller token totals.
// It is explicitly injectable: create one per orchestrated request for
// scoped accounting, or share a single process-wide instance. All
// methods are safe for concurrent use; increments are serialized so
// concurrent requests never lose updates.
type UsageTracker struct {
	mu      sync.Mutex
	cost    float64
	callers map[string]CallerStats
}

// NewUsageTracker creates an empty usage tracker.
func NewUsageTracker() *UsageTracker {
	return &UsageTracker{callers: make(map[string]CallerStats)}
}

// Record adds one successful call's usage. Cost is computed as
// completionTokens*outputPrice + promptTokens*inputPrice for the model.
func (t *UsageTracker) Record(caller, model string, usage outbound.TokenUsage) {
	price := priceFor(model)

	t.mu.Lock()
	defer t.mu.Unlock()

	t.cost += float64(usage.CompletionTokens)*price.output + float64(usage.PromptTokens)*price.input

	stats := t.callers[caller]
	stats.Calls++
	stats.TotalTokens += usage.TotalTokens
	t.callers[caller] = stats
}

// Cost returns the accumulated dollar cost across all recorded calls.
func (t *UsageTracker) Cost() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cost
}

// CallerStats returns a copy of the per-caller aggregation.
func (t *UsageTracker) CallerStats() map[string]CallerStats {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make(map[string]CallerStats, len(t.callers))
	for caller, stats := range t.callers {
		out[caller] = stats
	}
	return out
}
