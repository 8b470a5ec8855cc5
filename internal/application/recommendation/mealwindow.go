package recommendation

import (
	"time"

	"github.com/smartdine/v2/internal/domain/menu"
)

// MealKeysAt returns the meal categories currently being served.
//
// An empty result is a valid terminal state: nothing is served between
// midnight and 07:00. This resolver feeds the hard filter; it must not
// be conflated with MealTypeAt, which collapses categories differently
// for display purposes.
func MealKeysAt(now time.Time) []menu.MealCategory {
	hour := now.Hour()
	switch {
	case hour >= 7 && hour < 11:
		return []menu.MealCategory{menu.MealBreakfast, menu.MealGrabNGo}
	case hour >= 11 && hour < 16:
		return []menu.MealCategory{menu.MealLunch, menu.MealGrabNGo}
	case hour >= 16 && hour < 21:
		return []menu.MealCategory{menu.MealDinner}
	case hour >= 21:
		return []menu.MealCategory{menu.MealLateNight}
	default:
		return nil
	}
}

// MealTypeAt returns the single meal to highlight right now. Weekends
// have no breakfast service: before 15:00 it collapses into lunch,
// afterwards into dinner.
func MealTypeAt(now time.Time) menu.MealCategory {
	hour := now.Hour()

	if isWeekend(now) {
		if hour < 15 {
			return menu.MealLunch
		}
		return menu.MealDinner
	}

	switch {
	case hour >= 7 && hour < 11:
		return menu.MealBreakfast
	case hour >= 11 && hour < 16:
		return menu.MealLunch
	default:
		return menu.MealDinner
	}
}

func isWeekend(now time.Time) bool {
	wd := now.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
