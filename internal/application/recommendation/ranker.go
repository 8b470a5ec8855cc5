package recommendation

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/smartdine/v2/internal/application/completion"
	"github.com/smartdine/v2/internal/domain/menu"
	"github.com/smartdine/v2/internal/domain/profile"
	"github.com/smartdine/v2/internal/ports/inbound"
)

// usageCaller attributes ranker token usage in the usage tracker.
const usageCaller = "dining-ranker"

// maxPicksPerHall caps the dish names kept per hall from a model reply.
const maxPicksPerHall = 3

// Ranker turns a hard-filtered candidate set into per-hall dish picks by
// prompting a language model and defensively parsing its reply.
type Ranker struct {
	generator *completion.Generator
	logger    *zap.Logger
}

// NewRanker creates a ranker over the given generator.
func NewRanker(generator *completion.Generator, logger *zap.Logger) *Ranker {
	return &Ranker{
		generator: generator,
		logger:    logger.Named("ranker"),
	}
}

// Rank selects up to three dishes per hall from the candidates. It never
// fails: an unreachable provider or unparseable reply degrades to empty
// per-hall lists. Every returned name is guaranteed to come from the
// candidate set, so the hard-filter safety invariant extends to the
// model's output.
func (r *Ranker) Rank(ctx context.Context, mood string, prefs profile.Preferences, candidates CandidateSet) inbound.Result {
	prompt := buildRankingPrompt(mood, prefs, candidates)

	raw := r.generator.Generate(ctx, prompt,
		completion.WithJSONMode(),
		completion.WithCaller(usageCaller),
	)

	parsed := ExtractJSONObject(raw)
	if len(parsed) == 0 && raw != "" {
		r.logger.Warn("Model reply contained no extractable JSON",
			zap.Int("reply_length", len(raw)))
	}

	result := make(inbound.Result, len(menu.HallSlugs))
	for _, slug := range menu.HallSlugs {
		picks := coerceStringList(parsed[slug])
		picks = keepKnownCandidates(picks, candidates[slug])
		if len(picks) > maxPicksPerHall {
			picks = picks[:maxPicksPerHall]
		}
		result[slug] = picks
	}

	return result
}

// coerceStringList turns a raw JSON value into a string slice. A value
// that is not a list becomes an empty list; list elements are coerced to
// their string representation.
func coerceStringList(raw json.RawMessage) []string {
	if raw == nil {
		return []string{}
	}

	var elements []json.RawMessage
	if err := json.Unmarshal(raw, &elements); err != nil {
		return []string{}
	}

	out := make([]string, 0, len(elements))
	for _, elem := range elements {
		var s string
		if err := json.Unmarshal(elem, &s); err == nil {
			out = append(out, s)
			continue
		}
		var v any
		if err := json.Unmarshal(elem, &v); err == nil {
			out = append(out, fmt.Sprintf("%v", v))
		}
	}
	return out
}

// keepKnownCandidates drops names the model invented. Matching is
// case-insensitive against the hall's candidate names.
func keepKnownCandidates(names []string, candidates []Candidate) []string {
	if len(names) == 0 {
		return []string{}
	}

	known := make(map[string]struct{}, len(candidates))
	for _, c := range candidates {
		known[strings.ToLower(strings.TrimSpace(c.Name))] = struct{}{}
	}

	out := make([]string, 0, len(names))
	for _, name := range names {
		if _, ok := known[strings.ToLower(strings.TrimSpace(name))]; ok {
			out = append(out, name)
		}
	}
	return out
}

// buildRankingPrompt embeds the stored preferences, the mood text and the
// serialized candidate set into a single ranking instruction.
func buildRankingPrompt(mood string, prefs profile.Preferences, candidates CandidateSet) string {
	prefsJSON, err := json.MarshalIndent(prefs, "", "  ")
	if err != nil {
		prefsJSON = []byte("{}")
	}
	candidatesJSON, err := json.MarshalIndent(candidates, "", "  ")
	if err != nil {
		candidatesJSON = []byte("{}")
	}

	var b strings.Builder
	b.WriteString("You are the campus dining recommendation engine.\n\n")
	b.WriteString("The user stored preferences:\n")
	b.Write(prefsJSON)
	b.WriteString("\n\nUser's current mood/request:\n\"\"\"")
	b.WriteString(mood)
	b.WriteString("\"\"\"\n\n")
	b.WriteString("These dishes are available NOW (after time-based filtering + allergen filtering):\n")
	b.Write(candidatesJSON)
	b.WriteString(fmt.Sprintf(`

TASK:
For each hall (%s),
select UP TO 3 dishes that BEST match:
- allergies (must follow strictly)
- diet (e.g., vegetarian)
- user's likes/dislikes
- user's goals
- user's current mood text
Return ONLY valid JSON like:

{
  "berkshire": ["Dish A", "Dish B"],
  "worcester": [],
  "franklin": ["Dish"],
  "hampshire": []
}
`, strings.Join(menu.HallSlugs, ", ")))

	return b.String()
}
