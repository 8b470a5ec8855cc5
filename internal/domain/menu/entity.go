// Package menu contains the core domain model for dining hall menus.
// Dish and Hall values are read-only snapshots; any transformation must
// go through Clone so shared menu data is never mutated across requests.
package menu

import (
	"encoding/json"
	"strings"
	"time"
)

// MealCategory identifies one time-windowed meal service.
type MealCategory string

const (
	MealBreakfast MealCategory = "breakfast"
	MealLunch     MealCategory = "lunch"
	MealDinner    MealCategory = "dinner"
	MealGrabNGo   MealCategory = "grabngo"
	MealLateNight MealCategory = "latenight"
)

// HallSlugs lists the four fixed dining locations, in display order.
var HallSlugs = []string{"berkshire", "worcester", "franklin", "hampshire"}

// PlaceholderDishName is used when no name field survives normalization.
const PlaceholderDishName = "Unnamed Dish"

// ParseMealCategory normalizes a free-form meal label ("Grab 'N Go",
// "late night", "LUNCH") into a MealCategory. Unknown labels come back
// as a lowercased, squashed token so comparisons stay case-insensitive.
func ParseMealCategory(s string) MealCategory {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return MealCategory(b.String())
}

// Dish is one menu item within a meal category at a hall.
type Dish struct {
	Name        string       `json:"name"`
	Meal        MealCategory `json:"meal,omitempty"`
	Category    string       `json:"category,omitempty"`
	Calories    int          `json:"calories"`
	Allergens   []string     `json:"allergens"`
	DietTags    []string     `json:"dietTags"`
	Ingredients []string     `json:"ingredients,omitempty"`

	// Legacy marks string-only source entries that carry no structured
	// fields and therefore cannot be allergen-checked.
	Legacy bool `json:"-"`
}

// rawDish accepts the field aliases seen across menu sources. The upstream
// feed uses kebab-case ("dish-name", "ingredient-list") while the stored
// snapshot format uses camelCase ("dietTags").
type rawDish struct {
	DishName string `json:"dish-name"`
	ItemName string `json:"item_name"`
	Name     string `json:"name"`
	Item     string `json:"item"`
	Title    string `json:"title"`

	MealName    string `json:"meal-name"`
	MealNameAlt string `json:"meal_name"`
	Meal        string `json:"meal"`

	CategoryName string `json:"category-name"`
	Category     string `json:"category"`

	Calories       int      `json:"calories"`
	Allergens      []string `json:"allergens"`
	Diets          []string `json:"diets"`
	DietTags       []string `json:"dietTags"`
	DietCategories []string `json:"dietCategories"`
	Ingredients    []string `json:"ingredient-list"`
}

// UnmarshalJSON tolerates both structured dish records and legacy
// string-only entries. Malformed optional fields default to empty; a
// dish record never fails to decode because of missing fields.
func (d *Dish) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*d = Dish{Name: strings.TrimSpace(s), Legacy: true}
		if d.Name == "" {
			d.Name = PlaceholderDishName
		}
		return nil
	}

	var raw rawDish
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*d = raw.normalize()
	return nil
}

func (r rawDish) normalize() Dish {
	name := firstNonEmpty(r.DishName, r.ItemName, r.Name, r.Item, r.Title)
	if name == "" {
		name = PlaceholderDishName
	}

	meal := firstNonEmpty(r.MealName, r.MealNameAlt, r.Meal)
	category := firstNonEmpty(r.CategoryName, r.Category)

	diets := r.DietTags
	if diets == nil {
		diets = r.Diets
	}
	if diets == nil {
		diets = r.DietCategories
	}

	calories := r.Calories
	if calories < 0 {
		calories = 0
	}

	return Dish{
		Name:        strings.TrimSpace(name),
		Meal:        ParseMealCategory(meal),
		Category:    category,
		Calories:    calories,
		Allergens:   r.Allergens,
		DietTags:    diets,
		Ingredients: r.Ingredients,
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// Clone returns a deep copy of the dish.
func (d Dish) Clone() Dish {
	out := d
	out.Allergens = cloneStrings(d.Allergens)
	out.DietTags = cloneStrings(d.DietTags)
	out.Ingredients = cloneStrings(d.Ingredients)
	return out
}

// SearchText is the haystack used for banned ingredient/keyword matching:
// the dish name concatenated with its ingredient list, lowercased.
func (d Dish) SearchText() string {
	parts := make([]string, 0, len(d.Ingredients)+1)
	parts = append(parts, d.Name)
	parts = append(parts, d.Ingredients...)
	return strings.ToLower(strings.Join(parts, " "))
}

// Hall is one dining location with its menu snapshot.
type Hall struct {
	Slug      string                  `json:"slug"`
	Name      string                  `json:"hallName"`
	Hours     string                  `json:"hours"` // "HH:MM-HH:MM"
	MealHours map[MealCategory]string `json:"mealHours,omitempty"`
	Meals     map[MealCategory][]Dish `json:"meals"`
}

// IsOpenAt reports whether t falls within the hall's operating hours.
// A malformed hours string means closed.
func (h *Hall) IsOpenAt(t time.Time) bool {
	open, close, ok := parseHours(h.Hours)
	if !ok {
		return false
	}
	minute := t.Hour()*60 + t.Minute()
	return open <= minute && minute <= close
}

func parseHours(s string) (open, close int, ok bool) {
	parts := strings.Split(s, "-")
	if len(parts) != 2 {
		return 0, 0, false
	}
	open, ok = parseClock(strings.TrimSpace(parts[0]))
	if !ok {
		return 0, 0, false
	}
	close, ok = parseClock(strings.TrimSpace(parts[1]))
	if !ok {
		return 0, 0, false
	}
	return open, close, true
}

func parseClock(s string) (int, bool) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, false
	}
	return t.Hour()*60 + t.Minute(), true
}

// Clone returns a deep copy of the hall including all dishes.
func (h *Hall) Clone() *Hall {
	if h == nil {
		return nil
	}
	out := &Hall{
		Slug:  h.Slug,
		Name:  h.Name,
		Hours: h.Hours,
	}
	if h.MealHours != nil {
		out.MealHours = make(map[MealCategory]string, len(h.MealHours))
		for k, v := range h.MealHours {
			out.MealHours[k] = v
		}
	}
	if h.Meals != nil {
		out.Meals = CloneMeals(h.Meals)
	}
	return out
}

// CloneMeals deep-copies a per-category dish mapping.
func CloneMeals(meals map[MealCategory][]Dish) map[MealCategory][]Dish {
	out := make(map[MealCategory][]Dish, len(meals))
	for category, dishes := range meals {
		copied := make([]Dish, len(dishes))
		for i, d := range dishes {
			copied[i] = d.Clone()
		}
		out[category] = copied
	}
	return out
}

// CloneMenu deep-copies a per-hall dish mapping.
func CloneMenu(m map[string][]Dish) map[string][]Dish {
	out := make(map[string][]Dish, len(m))
	for slug, dishes := range m {
		copied := make([]Dish, len(dishes))
		for i, d := range dishes {
			copied[i] = d.Clone()
		}
		out[slug] = copied
	}
	return out
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}
