package recommendation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/smartdine/v2/internal/domain/menu"
)

// weekday and weekend anchors for clock-sensitive tests
var (
	monday   = time.Date(2026, 8, 17, 0, 0, 0, 0, time.UTC)
	saturday = time.Date(2026, 8, 22, 0, 0, 0, 0, time.UTC)
)

func at(day time.Time, hour, minute int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, time.UTC)
}

func TestMealKeysAt(t *testing.T) {
	cases := []struct {
		name string
		hour int
		want []menu.MealCategory
	}{
		{"BeforeService_ShouldBeEmpty", 3, nil},
		{"BreakfastWindowStart", 7, []menu.MealCategory{menu.MealBreakfast, menu.MealGrabNGo}},
		{"BreakfastWindowEnd", 10, []menu.MealCategory{menu.MealBreakfast, menu.MealGrabNGo}},
		{"LunchWindowStart", 11, []menu.MealCategory{menu.MealLunch, menu.MealGrabNGo}},
		{"LunchWindowEnd", 15, []menu.MealCategory{menu.MealLunch, menu.MealGrabNGo}},
		{"DinnerWindowStart", 16, []menu.MealCategory{menu.MealDinner}},
		{"DinnerWindowEnd", 20, []menu.MealCategory{menu.MealDinner}},
		{"LateNightWindow", 21, []menu.MealCategory{menu.MealLateNight}},
		{"LateNightBeforeMidnight", 23, []menu.MealCategory{menu.MealLateNight}},
		{"Midnight_ShouldBeEmpty", 0, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := MealKeysAt(at(monday, tc.hour, 0))
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestMealTypeAt(t *testing.T) {
	t.Run("WeekdayMorning_ShouldBeBreakfast", func(t *testing.T) {
		assert.Equal(t, menu.MealBreakfast, MealTypeAt(at(monday, 8, 0)))
	})

	t.Run("WeekdayNoon_ShouldBeLunch", func(t *testing.T) {
		assert.Equal(t, menu.MealLunch, MealTypeAt(at(monday, 12, 0)))
	})

	t.Run("WeekdayEvening_ShouldBeDinner", func(t *testing.T) {
		assert.Equal(t, menu.MealDinner, MealTypeAt(at(monday, 18, 0)))
	})

	t.Run("WeekendMorning_ShouldCollapseToLunch", func(t *testing.T) {
		assert.Equal(t, menu.MealLunch, MealTypeAt(at(saturday, 8, 0)))
		assert.Equal(t, menu.MealLunch, MealTypeAt(at(saturday, 14, 59)))
	})

	t.Run("WeekendAfternoon_ShouldCollapseToDinner", func(t *testing.T) {
		assert.Equal(t, menu.MealDinner, MealTypeAt(at(saturday, 15, 0)))
		assert.Equal(t, menu.MealDinner, MealTypeAt(at(saturday, 22, 0)))
	})
}
