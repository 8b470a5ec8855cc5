package recommendation

import (
	"github.com/smartdine/v2/internal/domain/menu"
)

// FilterMenuByPreferences produces the user-facing filtered dish lists
// for display. Safety comes first: any dish whose allergens conflict
// with the avoided set is dropped. When diet preferences are present,
// only allergen-safe dishes matching at least one preferred diet tag
// are kept; with no diet preferences every safe dish passes.
//
// Legacy string-only entries cannot be allergen-checked and are included
// only when no allergens are specified. Unlike the LLM candidate set,
// the result is uncapped. Input dishes are never mutated; the result
// holds copies.
func FilterMenuByPreferences(meals map[menu.MealCategory][]menu.Dish, userAllergens, dietPrefs []string) map[menu.MealCategory][]menu.Dish {
	filtered := make(map[menu.MealCategory][]menu.Dish, len(meals))

	for category, dishes := range meals {
		kept := make([]menu.Dish, 0, len(dishes))

		for _, dish := range dishes {
			if dish.Legacy {
				if len(userAllergens) == 0 {
					kept = append(kept, dish.Clone())
				}
				continue
			}
			if allergenConflict(dish, userAllergens) {
				continue
			}
			if len(dietPrefs) > 0 && !matchesAnyDiet(dish, dietPrefs) {
				continue
			}
			kept = append(kept, dish.Clone())
		}

		filtered[category] = kept
	}

	return filtered
}
