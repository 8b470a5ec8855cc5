// Package recommendation implements the dining recommendation pipeline:
// time-window resolution, hard safety filtering, deterministic scoring
// and language-model ranking.
package recommendation

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/smartdine/v2/internal/domain/menu"
	"github.com/smartdine/v2/internal/domain/profile"
	"github.com/smartdine/v2/internal/ports/inbound"
	"github.com/smartdine/v2/internal/ports/outbound"
	"github.com/smartdine/v2/pkg/errors"
)

// Service is the orchestrator composing the time window resolver, the
// hard filter engine and the LLM ranker into one recommendation call.
type Service struct {
	ranker *Ranker
	menus  outbound.MenuSource
	logger *zap.Logger
	now    func() time.Time
}

var _ inbound.RecommendationService = (*Service)(nil)

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithClock overrides the wall clock, mainly for tests.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) { s.now = now }
}

// NewService creates the orchestrator. menus may be nil when callers
// always supply menu data with the request.
func NewService(ranker *Ranker, menus outbound.MenuSource, logger *zap.Logger, opts ...ServiceOption) *Service {
	s := &Service{
		ranker: ranker,
		menus:  menus,
		logger: logger.Named("recommendation"),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Recommend runs the full pipeline for one request. Menu data passed in
// by the caller is deep-copied before filtering so a shared snapshot is
// never corrupted across concurrent requests.
func (s *Service) Recommend(ctx context.Context, mood string, prefs profile.Preferences, menuData map[string][]menu.Dish) (inbound.Result, error) {
	prefs = prefs.Normalized()
	now := s.now()

	var fullMenu map[string][]menu.Dish
	switch {
	case menuData != nil:
		fullMenu = menu.CloneMenu(menuData)
	case s.menus != nil:
		fullMenu = s.fetchMenus(ctx, now)
	default:
		return nil, errors.NewConfigurationError(
			"no menu source configured and no menu data supplied")
	}

	allowedMeals := MealKeysAt(now)
	candidates := FilterCandidates(fullMenu, prefs, allowedMeals)

	candidateCount := 0
	for _, c := range candidates {
		candidateCount += len(c)
	}
	s.logger.Info("Hard filter complete",
		zap.Int("allowed_meals", len(allowedMeals)),
		zap.Int("candidates", candidateCount))

	return s.ranker.Rank(ctx, mood, prefs, candidates), nil
}

// fetchMenus pulls today's menu for every known hall. A hall whose fetch
// fails contributes an empty list rather than failing the request.
func (s *Service) fetchMenus(ctx context.Context, day time.Time) map[string][]menu.Dish {
	fullMenu := make(map[string][]menu.Dish, len(menu.HallSlugs))
	for _, slug := range menu.HallSlugs {
		dishes, err := s.menus.FetchMenu(ctx, slug, day)
		if err != nil {
			s.logger.Warn("Menu fetch failed, treating hall as empty",
				zap.String("hall", slug),
				zap.Error(err))
			dishes = nil
		}
		fullMenu[slug] = dishes
	}
	return fullMenu
}

// RankHalls builds the deterministic hall ranking: per-hall score record
// plus the preference-filtered menu, sorted by (matchRate, score)
// descending. This path never touches the language model.
func (s *Service) RankHalls(_ context.Context, halls []*menu.Hall, prefs profile.Preferences, now time.Time) []inbound.HallSummary {
	prefs = prefs.Normalized()

	summaries := make([]inbound.HallSummary, 0, len(halls))
	for _, hall := range halls {
		hall = hall.Clone()

		summaries = append(summaries, inbound.HallSummary{
			Slug:          hall.Slug,
			Name:          hall.Name,
			Hours:         hall.Hours,
			IsOpen:        hall.IsOpenAt(now),
			Score:         HallScore(hall, prefs, now),
			FilteredMeals: FilterMenuByPreferences(hall.Meals, prefs.Allergens, prefs.DietPreferences),
		})
	}

	SortHallSummaries(summaries)
	return summaries
}
