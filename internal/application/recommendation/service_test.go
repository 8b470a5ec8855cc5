package recommendation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"github.com/smartdine/v2/internal/application/completion"
	"github.com/smartdine/v2/internal/domain/menu"
	"github.com/smartdine/v2/internal/domain/profile"
	"github.com/smartdine/v2/pkg/errors"
)

type ServiceTestSuite struct {
	suite.Suite
	client *stubClient
}

func (suite *ServiceTestSuite) SetupTest() {
	suite.client = &stubClient{reply: `{}`}
}

func (suite *ServiceTestSuite) newService(opts ...ServiceOption) *Service {
	usage := completion.NewUsageTracker()
	gen := completion.NewGenerator(suite.client, "gpt-4o", usage, zap.NewNop())
	ranker := NewRanker(gen, zap.NewNop())
	return NewService(ranker, nil, zap.NewNop(), opts...)
}

func fixedClock(t time.Time) ServiceOption {
	return WithClock(func() time.Time { return t })
}

func (suite *ServiceTestSuite) TestRecommend() {
	suite.Run("NoMenuAndNoSource_ShouldReturnConfigurationError", func() {
		service := suite.newService()

		result, err := service.Recommend(context.Background(), "", profile.Preferences{}, nil)

		require.Error(suite.T(), err)
		assert.Nil(suite.T(), result)
		assert.Equal(suite.T(), errors.CodeConfiguration, errors.GetCode(err))
		assert.Zero(suite.T(), suite.client.calls, "no provider call without menu data")
	})

	suite.Run("EmptyMenuData_ShouldYieldFourEmptyHalls", func() {
		service := suite.newService(fixedClock(at(monday, 12, 0)))

		result, err := service.Recommend(context.Background(), "anything", profile.Preferences{},
			map[string][]menu.Dish{})

		require.NoError(suite.T(), err)
		require.Len(suite.T(), result, len(menu.HallSlugs))
		for _, slug := range menu.HallSlugs {
			require.Contains(suite.T(), result, slug)
			assert.Empty(suite.T(), result[slug])
		}
	})

	suite.Run("BreakfastAtEight_ShouldOfferBreakfastDish", func() {
		suite.client.reply = `{"berkshire": ["Oatmeal"]}`
		service := suite.newService(fixedClock(at(monday, 8, 0)))

		menuData := map[string][]menu.Dish{
			"berkshire": {{Name: "Oatmeal", Meal: menu.MealBreakfast}},
		}

		result, err := service.Recommend(context.Background(), "warm breakfast", profile.Preferences{}, menuData)

		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), []string{"Oatmeal"}, result["berkshire"])
	})

	suite.Run("BreakfastDishAtSix_ShouldNeverSurface", func() {
		// The model insists on Oatmeal, but the dish is out of window so
		// it never enters the candidate set.
		suite.client.reply = `{"berkshire": ["Oatmeal"]}`
		service := suite.newService(fixedClock(at(monday, 18, 0)))

		menuData := map[string][]menu.Dish{
			"berkshire": {{Name: "Oatmeal", Meal: menu.MealBreakfast}},
		}

		result, err := service.Recommend(context.Background(), "", profile.Preferences{}, menuData)

		require.NoError(suite.T(), err)
		assert.Empty(suite.T(), result["berkshire"])
	})

	suite.Run("AllergenConflict_ShouldNeverSurface", func() {
		suite.client.reply = `{"franklin": ["Walnut Brownie"]}`
		service := suite.newService(fixedClock(at(monday, 12, 0)))

		menuData := map[string][]menu.Dish{
			"franklin": {{Name: "Walnut Brownie", Meal: menu.MealLunch, Allergens: []string{"tree nuts"}}},
		}

		prefs := profile.Preferences{Allergens: []string{"nut"}}
		result, err := service.Recommend(context.Background(), "", prefs, menuData)

		require.NoError(suite.T(), err)
		assert.Empty(suite.T(), result["franklin"])
	})

	suite.Run("CallerMenuData_ShouldNotBeMutated", func() {
		service := suite.newService(fixedClock(at(monday, 12, 0)))

		menuData := map[string][]menu.Dish{
			"worcester": {{Name: "Soup", Meal: menu.MealLunch, Allergens: []string{"celery"}}},
		}

		_, err := service.Recommend(context.Background(), "", profile.Preferences{}, menuData)

		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), "Soup", menuData["worcester"][0].Name)
		assert.Equal(suite.T(), []string{"celery"}, menuData["worcester"][0].Allergens)
	})
}

func (suite *ServiceTestSuite) TestRankHalls() {
	service := suite.newService()
	noon := at(monday, 12, 0)

	halls := []*menu.Hall{
		{
			Slug:  "berkshire",
			Name:  "Berkshire",
			Hours: "07:00-21:00",
			Meals: map[menu.MealCategory][]menu.Dish{
				menu.MealLunch: {{Name: "Tofu Bowl", DietTags: []string{"vegan"}}},
			},
		},
		{
			Slug:  "franklin",
			Name:  "Franklin",
			Hours: "bogus",
		},
	}

	prefs := profile.Preferences{DietPreferences: []string{"vegan"}}
	summaries := service.RankHalls(context.Background(), halls, prefs, noon)

	require.Len(suite.T(), summaries, 2)
	assert.Equal(suite.T(), "berkshire", summaries[0].Slug, "full match outranks empty hall")
	assert.True(suite.T(), summaries[0].IsOpen)
	assert.False(suite.T(), summaries[1].IsOpen)
	assert.Equal(suite.T(), 70, summaries[1].Score.MatchRate, "empty menu gets the neutral rate")

	require.Contains(suite.T(), summaries[0].FilteredMeals, menu.MealLunch)
	assert.Len(suite.T(), summaries[0].FilteredMeals[menu.MealLunch], 1)

	// Input halls stay untouched even though summaries carry filtered copies.
	summaries[0].FilteredMeals[menu.MealLunch][0].Name = "changed"
	assert.Equal(suite.T(), "Tofu Bowl", halls[0].Meals[menu.MealLunch][0].Name)
}

func TestServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ServiceTestSuite))
}
