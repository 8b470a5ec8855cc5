// Package inbound defines the interfaces for inbound ports (primary/driving adapters)
// These are the use-case interfaces exposed to transport layers
package inbound

import (
	"context"
	"time"

	"github.com/smartdine/v2/internal/domain/menu"
	"github.com/smartdine/v2/internal/domain/profile"
)

// Result maps every known hall slug to at most three recommended dish
// names. All four slugs are always present; an empty list means no
// recommendation for that hall.
type Result map[string][]string

// ScoreRecord is the deterministic match quality for a hall or a single
// meal, recomputed per request and never persisted.
type ScoreRecord struct {
	Score         float64 `json:"score"`
	MatchingItems int     `json:"matchingItems"`
	TotalCalories int     `json:"totalCalories,omitempty"`
	MatchRate     int     `json:"matchRate"`
}

// HallSummary is the per-hall payload for deterministic, non-LLM display:
// score record plus the preference-filtered menu.
type HallSummary struct {
	Slug          string                            `json:"slug"`
	Name          string                            `json:"hallName"`
	Hours         string                            `json:"hours"`
	IsOpen        bool                              `json:"isOpen"`
	Score         ScoreRecord                       `json:"scoreRecord"`
	FilteredMeals map[menu.MealCategory][]menu.Dish `json:"filteredMeals"`
}

// RecommendationService is the public entry point of the recommendation
// core.
type RecommendationService interface {
	// Recommend runs the full pipeline for one request: hard filter over
	// the current meal window, then language-model ranking. menuData may
	// be nil, in which case a configured menu source is consulted; with
	// neither, a configuration error is returned.
	Recommend(ctx context.Context, mood string, prefs profile.Preferences, menuData map[string][]menu.Dish) (Result, error)

	// RankHalls produces the deterministic hall ranking shown alongside
	// the LLM picks, sorted by (matchRate, score) descending.
	RankHalls(ctx context.Context, halls []*menu.Hall, prefs profile.Preferences, now time.Time) []HallSummary
}
