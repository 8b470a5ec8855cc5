package recommendation

import (
	"github.com/smartdine/v2/internal/domain/menu"
	"github.com/smartdine/v2/internal/domain/profile"
)

// MaxCandidatesPerHall bounds the candidate set handed to the language
// model, keeping the ranking prompt within a predictable token budget.
const MaxCandidatesPerHall = 25

// Candidate is one hard-filtered dish in the shape serialized into the
// ranking prompt. Calories are deliberately omitted.
type Candidate struct {
	Name      string   `json:"name"`
	Meal      string   `json:"meal"`
	Category  string   `json:"category"`
	Allergens []string `json:"allergens"`
	Diets     []string `json:"diets"`
}

// CandidateSet holds the per-hall candidates, each list capped at
// MaxCandidatesPerHall with insertion order preserved.
type CandidateSet map[string][]Candidate

// FilterCandidates applies the non-negotiable exclusions to a full
// per-hall menu: dishes outside the allowed meal window, dishes whose
// allergens conflict with the avoided set, and dishes whose name or
// ingredients contain a banned term. Malformed dish records never cause
// an error; missing fields behave as empty collections.
func FilterCandidates(fullMenu map[string][]menu.Dish, prefs profile.Preferences, allowedMeals []menu.MealCategory) CandidateSet {
	allowed := make(map[menu.MealCategory]struct{}, len(allowedMeals))
	for _, m := range allowedMeals {
		allowed[m] = struct{}{}
	}
	bannedTerms := prefs.BannedTerms()

	filtered := make(CandidateSet, len(fullMenu))
	for slug, dishes := range fullMenu {
		candidates := make([]Candidate, 0, MaxCandidatesPerHall)

		for _, dish := range dishes {
			if _, ok := allowed[dish.Meal]; !ok {
				continue
			}
			if allergenConflict(dish, prefs.Allergens) {
				continue
			}
			if bannedTermConflict(dish, bannedTerms) {
				continue
			}

			candidates = append(candidates, Candidate{
				Name:      dish.Name,
				Meal:      string(dish.Meal),
				Category:  dish.Category,
				Allergens: emptyIfNil(dish.Allergens),
				Diets:     emptyIfNil(dish.DietTags),
			})
			if len(candidates) == MaxCandidatesPerHall {
				break
			}
		}

		filtered[slug] = candidates
	}

	return filtered
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
