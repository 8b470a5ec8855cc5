// Package profile holds the user preference snapshot consumed by the
// recommendation pipeline. The record is owned by an external profile
// store; the core treats it as immutable for the duration of one call.
package profile

// DefaultCalorieTarget is applied when a profile carries no target.
const DefaultCalorieTarget = 2000

// Preferences is one user's dining constraints and tastes.
//
// Allergens, AvoidIngredients and AvoidKeywords are hard constraints;
// DietPreferences use at-least-one-match semantics; Likes, Dislikes and
// Goals only steer the language-model ranking.
type Preferences struct {
	Allergens        []string `json:"avoid_allergens"`
	AvoidIngredients []string `json:"avoid_ingredients"`
	AvoidKeywords    []string `json:"avoid_keywords"`
	DietPreferences  []string `json:"diet"`
	Likes            string   `json:"likes,omitempty"`
	Dislikes         string   `json:"dislikes,omitempty"`
	Goals            []string `json:"goals,omitempty"`
	CalorieTarget    int      `json:"calorie_target,omitempty"`
}

// Normalized returns a copy with defaults applied and nil slices replaced
// by empty ones so downstream serialization stays shape-stable.
func (p Preferences) Normalized() Preferences {
	out := p.Clone()
	if out.CalorieTarget <= 0 {
		out.CalorieTarget = DefaultCalorieTarget
	}
	if out.Allergens == nil {
		out.Allergens = []string{}
	}
	if out.AvoidIngredients == nil {
		out.AvoidIngredients = []string{}
	}
	if out.AvoidKeywords == nil {
		out.AvoidKeywords = []string{}
	}
	if out.DietPreferences == nil {
		out.DietPreferences = []string{}
	}
	if out.Goals == nil {
		out.Goals = []string{}
	}
	return out
}

// BannedTerms is the deduplicated union of ingredients and keywords to
// avoid, used by the hard filter's free-text matching.
func (p Preferences) BannedTerms() []string {
	seen := make(map[string]struct{}, len(p.AvoidIngredients)+len(p.AvoidKeywords))
	out := make([]string, 0, len(p.AvoidIngredients)+len(p.AvoidKeywords))
	for _, group := range [][]string{p.AvoidIngredients, p.AvoidKeywords} {
		for _, term := range group {
			if term == "" {
				continue
			}
			if _, ok := seen[term]; ok {
				continue
			}
			seen[term] = struct{}{}
			out = append(out, term)
		}
	}
	return out
}

// Clone returns a deep copy of the preferences.
func (p Preferences) Clone() Preferences {
	out := p
	out.Allergens = cloneStrings(p.Allergens)
	out.AvoidIngredients = cloneStrings(p.AvoidIngredients)
	out.AvoidKeywords = cloneStrings(p.AvoidKeywords)
	out.DietPreferences = cloneStrings(p.DietPreferences)
	out.Goals = cloneStrings(p.Goals)
	return out
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}
