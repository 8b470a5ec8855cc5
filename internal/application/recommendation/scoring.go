package recommendation

import (
	"math"
	"sort"
	"time"

	"github.com/smartdine/v2/internal/domain/menu"
	"github.com/smartdine/v2/internal/domain/profile"
	"github.com/smartdine/v2/internal/ports/inbound"
)

// Scoring weights for the hall-level aggregate score.
const (
	hallDietMatchPoints = 10
	hallOpenBonus       = 50
	hallPerItemBonus    = 5
	hallRatePerPrefDish = 5
	hallRateFloor       = 60
	hallRateEmptyMenu   = 70
)

// Scoring weights for the single-meal score. These deliberately differ
// from the hall-level weights; the two scores serve different display
// contexts and are kept as separate algorithms.
const (
	mealSafeItemPoints   = 10
	mealDietMatchPoints  = 15
	mealLegacyItemPoints = 5
	mealOpenBonus        = 50
	mealPerSafeBonus     = 2
	mealSafeRateWeight   = 0.7
	mealDietRateWeight   = 0.3
)

// HallScore computes the aggregate match quality for one hall across all
// meal categories. It is a pure function of (hall, prefs, now): identical
// inputs always produce identical records.
//
// Dishes conflicting with an avoided allergen contribute nothing and are
// not counted as matching. Legacy string-only entries cannot be
// allergen-checked and count as matching with zero calories.
func HallScore(hall *menu.Hall, prefs profile.Preferences, now time.Time) inbound.ScoreRecord {
	var (
		score           float64
		matchingItems   int
		totalCalories   int
		totalItems      int
		prefMatchedDish int
	)

	for _, dishes := range hall.Meals {
		for _, dish := range dishes {
			totalItems++

			if dish.Legacy {
				matchingItems++
				continue
			}
			if allergenConflict(dish, prefs.Allergens) {
				continue
			}

			if pairs := dietMatchCount(dish, prefs.DietPreferences); pairs > 0 {
				score += float64(pairs * hallDietMatchPoints)
				prefMatchedDish++
			}
			matchingItems++
			totalCalories += dish.Calories
		}
	}

	if hall.IsOpenAt(now) {
		score += hallOpenBonus
	}
	score += float64(matchingItems * hallPerItemBonus)

	matchRate := hallRateEmptyMenu
	if totalItems > 0 {
		rate := int(math.Floor(float64(matchingItems)/float64(totalItems)*100)) + prefMatchedDish*hallRatePerPrefDish
		matchRate = clampInt(rate, hallRateFloor, 100)
	}

	return inbound.ScoreRecord{
		Score:         score,
		MatchingItems: matchingItems,
		TotalCalories: totalCalories,
		MatchRate:     matchRate,
	}
}

// MealScore computes the match quality for a single meal category at one
// hall. Pure and deterministic like HallScore, but with its own point
// weighting and a 0 match-rate floor.
func MealScore(hall *menu.Hall, category menu.MealCategory, prefs profile.Preferences, now time.Time) inbound.ScoreRecord {
	var (
		score       float64
		safeItems   int
		dietMatched int
		totalItems  int
	)

	for _, dish := range hall.Meals[category] {
		totalItems++

		// Legacy entries carry no structured fields to evaluate.
		if dish.Legacy {
			score += mealLegacyItemPoints
			safeItems++
			continue
		}
		if allergenConflict(dish, prefs.Allergens) {
			continue
		}

		safeItems++
		score += mealSafeItemPoints

		if pairs := dietMatchCount(dish, prefs.DietPreferences); pairs > 0 {
			score += float64(pairs * mealDietMatchPoints)
			dietMatched++
		}
	}

	if hall.IsOpenAt(now) {
		score += mealOpenBonus
	}
	score += float64(safeItems * mealPerSafeBonus)

	matchRate := 0
	if totalItems > 0 {
		if len(prefs.DietPreferences) > 0 {
			safeRate := float64(safeItems) / float64(totalItems) * 100
			dietRate := 0.0
			if safeItems > 0 {
				dietRate = float64(dietMatched) / float64(safeItems) * 100
			}
			matchRate = int(mealSafeRateWeight*safeRate + mealDietRateWeight*dietRate)
		} else {
			matchRate = int(float64(safeItems) / float64(totalItems) * 100)
		}
		matchRate = clampInt(matchRate, 0, 100)
	}

	return inbound.ScoreRecord{
		Score:         score,
		MatchingItems: safeItems,
		MatchRate:     matchRate,
	}
}

// SortHallSummaries orders hall summaries descending by (matchRate,
// score). Match rate is the primary key so the displayed percentage is
// always consistent with rank order. The sort is stable.
func SortHallSummaries(summaries []inbound.HallSummary) {
	sort.SliceStable(summaries, func(i, j int) bool {
		if summaries[i].Score.MatchRate != summaries[j].Score.MatchRate {
			return summaries[i].Score.MatchRate > summaries[j].Score.MatchRate
		}
		return summaries[i].Score.Score > summaries[j].Score.Score
	})
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
