package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/smartdine/v2/internal/domain/menu"
	"github.com/smartdine/v2/internal/domain/profile"
	"github.com/smartdine/v2/internal/infrastructure/persistence/memory"
	"github.com/smartdine/v2/internal/ports/inbound"
	"github.com/smartdine/v2/pkg/errors"
)

// stubService replays canned results and records the last call.
type stubService struct {
	result    inbound.Result
	err       error
	summaries []inbound.HallSummary
	lastMood  string
	lastPrefs profile.Preferences
}

func (s *stubService) Recommend(_ context.Context, mood string, prefs profile.Preferences, _ map[string][]menu.Dish) (inbound.Result, error) {
	s.lastMood = mood
	s.lastPrefs = prefs
	return s.result, s.err
}

func (s *stubService) RankHalls(_ context.Context, _ []*menu.Hall, prefs profile.Preferences, _ time.Time) []inbound.HallSummary {
	s.lastPrefs = prefs
	return s.summaries
}

func newTestAPI(service *stubService) *API {
	store := memory.NewMenuStore()
	store.Seed([]*menu.Hall{
		{Slug: "berkshire", Name: "Berkshire", Hours: "07:00-21:00"},
	})
	return NewAPI(service, store, zap.NewNop())
}

func TestRecommend(t *testing.T) {
	t.Run("ValidRequest_ShouldReturnRecommendations", func(t *testing.T) {
		service := &stubService{result: inbound.Result{
			"berkshire": {"Oatmeal"},
			"worcester": {},
			"franklin":  {},
			"hampshire": {},
		}}
		api := newTestAPI(service)

		body := `{"mood": "warm breakfast", "preferences": {"avoid_allergens": ["nut"]}}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/recommendations", strings.NewReader(body))
		rec := httptest.NewRecorder()

		api.Recommend(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "warm breakfast", service.lastMood)
		assert.Equal(t, []string{"nut"}, service.lastPrefs.Allergens)

		var payload struct {
			Recommendations inbound.Result `json:"recommendations"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
		assert.Equal(t, []string{"Oatmeal"}, payload.Recommendations["berkshire"])
	})

	t.Run("MalformedBody_ShouldReturnBadRequest", func(t *testing.T) {
		api := newTestAPI(&stubService{})

		req := httptest.NewRequest(http.MethodPost, "/api/v1/recommendations", strings.NewReader("{not json"))
		rec := httptest.NewRecorder()

		api.Recommend(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var resp errors.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, errors.CodeBadRequest, resp.Error.Code)
	})

	t.Run("OverlongMood_ShouldFailValidation", func(t *testing.T) {
		api := newTestAPI(&stubService{})

		body, err := json.Marshal(map[string]any{"mood": strings.Repeat("x", 2001)})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/recommendations", strings.NewReader(string(body)))
		rec := httptest.NewRecorder()

		api.Recommend(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("ServiceError_ShouldMapToStatusCode", func(t *testing.T) {
		service := &stubService{err: errors.NewConfigurationError("no menu source")}
		api := newTestAPI(service)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/recommendations", strings.NewReader(`{}`))
		rec := httptest.NewRecorder()

		api.Recommend(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)

		var resp errors.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, errors.CodeConfiguration, resp.Error.Code)
	})
}

func TestHalls(t *testing.T) {
	service := &stubService{summaries: []inbound.HallSummary{
		{Slug: "berkshire", Name: "Berkshire", Score: inbound.ScoreRecord{MatchRate: 80}},
	}}
	api := newTestAPI(service)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/halls?allergens=nut,%20dairy&diets=vegan", nil)
	rec := httptest.NewRecorder()

	api.Halls(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"nut", "dairy"}, service.lastPrefs.Allergens, "comma split trims whitespace")
	assert.Equal(t, []string{"vegan"}, service.lastPrefs.DietPreferences)

	var payload struct {
		Halls []inbound.HallSummary `json:"halls"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.Len(t, payload.Halls, 1)
	assert.Equal(t, 80, payload.Halls[0].Score.MatchRate)
}

func TestMenus(t *testing.T) {
	api := newTestAPI(&stubService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/menus", nil)
	rec := httptest.NewRecorder()

	api.Menus(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		CurrentMeal string `json:"currentMeal"`
		Halls       []struct {
			HallName string `json:"hallName"`
			Hours    string `json:"hours"`
		} `json:"halls"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.NotEmpty(t, payload.CurrentMeal)
	require.Len(t, payload.Halls, 1)
	assert.Equal(t, "Berkshire", payload.Halls[0].HallName)
	assert.Equal(t, "07:00-21:00", payload.Halls[0].Hours)
}

func TestHealth(t *testing.T) {
	api := newTestAPI(&stubService{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()

	api.Health(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status": "ok"}`, rec.Body.String())
}
