// Package handlers provides the JSON API handlers for the
// recommendation service
package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/smartdine/v2/internal/application/recommendation"
	"github.com/smartdine/v2/internal/domain/menu"
	"github.com/smartdine/v2/internal/domain/profile"
	"github.com/smartdine/v2/internal/ports/inbound"
	"github.com/smartdine/v2/internal/ports/outbound"
	"github.com/smartdine/v2/pkg/errors"
)

// API bundles the handlers for the recommendation endpoints.
type API struct {
	service  inbound.RecommendationService
	menus    outbound.MenuSource
	validate *validator.Validate
	logger   *zap.Logger
}

// NewAPI creates the API handler set.
func NewAPI(service inbound.RecommendationService, menus outbound.MenuSource, logger *zap.Logger) *API {
	return &API{
		service:  service,
		menus:    menus,
		validate: validator.New(),
		logger:   logger.Named("api"),
	}
}

// recommendRequest is the POST /recommendations payload. Menu data is
// optional; without it the configured menu source is consulted.
type recommendRequest struct {
	Mood        string                 `json:"mood" validate:"max=2000"`
	Preferences profile.Preferences    `json:"preferences"`
	Menu        map[string][]menu.Dish `json:"menu,omitempty"`
}

// Recommend handles POST /api/v1/recommendations.
func (a *API) Recommend(w http.ResponseWriter, r *http.Request) {
	var req recommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.respondError(w, r, errors.NewBadRequestError("request body is not valid JSON").WithCause(err))
		return
	}
	if err := a.validate.Struct(&req); err != nil {
		a.respondError(w, r, errors.NewValidationError(err.Error()))
		return
	}

	result, err := a.service.Recommend(r.Context(), req.Mood, req.Preferences, req.Menu)
	if err != nil {
		a.respondError(w, r, errors.Wrap(err, "recommendation failed"))
		return
	}

	a.respondJSON(w, http.StatusOK, map[string]any{
		"recommendations": result,
	})
}

// Halls handles GET /api/v1/halls. Allergens and diet preferences come
// in as comma-separated query parameters.
func (a *API) Halls(w http.ResponseWriter, r *http.Request) {
	halls, err := a.menus.FetchHalls(r.Context())
	if err != nil {
		a.respondError(w, r, errors.Wrap(err, "failed to load halls"))
		return
	}

	prefs := profile.Preferences{
		Allergens:       splitParam(r.URL.Query().Get("allergens")),
		DietPreferences: splitParam(r.URL.Query().Get("diets")),
	}

	summaries := a.service.RankHalls(r.Context(), halls, prefs, time.Now())

	a.respondJSON(w, http.StatusOK, map[string]any{
		"halls": summaries,
	})
}

// Menus handles GET /api/v1/menus: the raw per-hall menu snapshot with
// open/closed status, no preference filtering.
func (a *API) Menus(w http.ResponseWriter, r *http.Request) {
	halls, err := a.menus.FetchHalls(r.Context())
	if err != nil {
		a.respondError(w, r, errors.Wrap(err, "failed to load halls"))
		return
	}

	now := time.Now()
	type hallMenu struct {
		HallName string                            `json:"hallName"`
		Hours    string                            `json:"hours"`
		IsOpen   bool                              `json:"isOpen"`
		Meals    map[menu.MealCategory][]menu.Dish `json:"meals"`
	}

	hallMenus := make([]hallMenu, 0, len(halls))
	for _, hall := range halls {
		hallMenus = append(hallMenus, hallMenu{
			HallName: hall.Name,
			Hours:    hall.Hours,
			IsOpen:   hall.IsOpenAt(now),
			Meals:    hall.Meals,
		})
	}

	a.respondJSON(w, http.StatusOK, map[string]any{
		"currentMeal": recommendation.MealTypeAt(now),
		"halls":       hallMenus,
	})
}

// Health handles GET /healthz.
func (a *API) Health(w http.ResponseWriter, _ *http.Request) {
	a.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (a *API) respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		a.logger.Error("Failed to encode response", zap.Error(err))
	}
}

func (a *API) respondError(w http.ResponseWriter, r *http.Request, appErr *errors.AppError) {
	requestID := chimiddleware.GetReqID(r.Context())
	a.logger.Warn("Request failed",
		zap.String("code", string(appErr.Code)),
		zap.String("request_id", requestID),
		zap.Error(appErr))
	a.respondJSON(w, appErr.StatusCode(), errors.ToErrorResponse(appErr, requestID))
}

func splitParam(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
