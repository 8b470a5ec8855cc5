package recommendation

import (
	"strings"

	"github.com/smartdine/v2/internal/domain/menu"
)

// allergenConflict reports whether any avoided token is a case-insensitive
// substring of any dish allergen. Substring, not equality: "nut" must
// match "tree nuts".
func allergenConflict(dish menu.Dish, avoided []string) bool {
	if len(avoided) == 0 || len(dish.Allergens) == 0 {
		return false
	}
	for _, avoid := range avoided {
		avoid = strings.ToLower(strings.TrimSpace(avoid))
		if avoid == "" {
			continue
		}
		for _, allergen := range dish.Allergens {
			if strings.Contains(strings.ToLower(allergen), avoid) {
				return true
			}
		}
	}
	return false
}

// bannedTermConflict reports whether any banned ingredient/keyword term
// appears in the dish name or ingredient list.
func bannedTermConflict(dish menu.Dish, bannedTerms []string) bool {
	if len(bannedTerms) == 0 {
		return false
	}
	text := dish.SearchText()
	for _, term := range bannedTerms {
		term = strings.ToLower(strings.TrimSpace(term))
		if term == "" {
			continue
		}
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}

// dietMatchCount counts (dish tag, preference) pairs that match. A dish
// can score for multiple preference matches.
func dietMatchCount(dish menu.Dish, dietPrefs []string) int {
	if len(dietPrefs) == 0 || len(dish.DietTags) == 0 {
		return 0
	}
	count := 0
	for _, tag := range dish.DietTags {
		for _, pref := range dietPrefs {
			if strings.EqualFold(strings.TrimSpace(tag), strings.TrimSpace(pref)) {
				count++
			}
		}
	}
	return count
}

// matchesAnyDiet reports whether the dish carries at least one of the
// preferred diet tags.
func matchesAnyDiet(dish menu.Dish, dietPrefs []string) bool {
	return dietMatchCount(dish, dietPrefs) > 0
}
