package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartdine/v2/internal/domain/menu"
	"github.com/smartdine/v2/pkg/errors"
)

func seededStore() *MenuStore {
	store := NewMenuStore()
	store.Seed([]*menu.Hall{
		{
			Slug:  "berkshire",
			Name:  "Berkshire",
			Hours: "07:00-21:00",
			Meals: map[menu.MealCategory][]menu.Dish{
				menu.MealBreakfast: {{Name: "Oatmeal"}},
				menu.MealLunch:     {{Name: "Soup", Meal: menu.MealLunch}},
			},
		},
		{Slug: "franklin", Name: "Franklin", Hours: "08:00-20:00"},
	})
	return store
}

func TestFetchMenu(t *testing.T) {
	store := seededStore()
	day := time.Date(2026, 8, 17, 0, 0, 0, 0, time.UTC)

	t.Run("KnownHall_ShouldFlattenMealsWithCategory", func(t *testing.T) {
		dishes, err := store.FetchMenu(context.Background(), "berkshire", day)

		require.NoError(t, err)
		require.Len(t, dishes, 2)

		byName := map[string]menu.Dish{}
		for _, d := range dishes {
			byName[d.Name] = d
		}
		assert.Equal(t, menu.MealBreakfast, byName["Oatmeal"].Meal, "untagged dish picks up its category")
		assert.Equal(t, menu.MealLunch, byName["Soup"].Meal)
	})

	t.Run("UnknownHall_ShouldReturnMenuNotFound", func(t *testing.T) {
		_, err := store.FetchMenu(context.Background(), "orchard", day)

		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.CodeMenuNotFound))
	})

	t.Run("ReturnedDishes_ShouldBeCopies", func(t *testing.T) {
		dishes, err := store.FetchMenu(context.Background(), "berkshire", day)
		require.NoError(t, err)

		for i := range dishes {
			dishes[i].Name = "changed"
		}

		again, err := store.FetchMenu(context.Background(), "berkshire", day)
		require.NoError(t, err)
		for _, d := range again {
			assert.NotEqual(t, "changed", d.Name)
		}
	})
}

func TestFetchHalls(t *testing.T) {
	store := seededStore()

	t.Run("ShouldReturnFixedSlugOrder", func(t *testing.T) {
		halls, err := store.FetchHalls(context.Background())

		require.NoError(t, err)
		require.Len(t, halls, 2)
		assert.Equal(t, "berkshire", halls[0].Slug)
		assert.Equal(t, "franklin", halls[1].Slug)
	})

	t.Run("ReturnedHalls_ShouldBeCopies", func(t *testing.T) {
		halls, err := store.FetchHalls(context.Background())
		require.NoError(t, err)

		halls[0].Meals[menu.MealBreakfast][0].Name = "changed"

		again, err := store.FetchHalls(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "Oatmeal", again[0].Meals[menu.MealBreakfast][0].Name)
	})
}

func TestSeedReplacesSnapshot(t *testing.T) {
	store := seededStore()

	store.Seed([]*menu.Hall{{Slug: "hampshire", Name: "Hampshire"}})

	halls, err := store.FetchHalls(context.Background())
	require.NoError(t, err)
	require.Len(t, halls, 1)
	assert.Equal(t, "hampshire", halls[0].Slug)
}
