package services

import (
	"testing"

	"github.com/OrangeSorbet/annavistara/models"

	"github.com/stretchr/testify/require"
)

func mealWith(nutrition models.NutrientMap) models.Meal {
	return models.Meal{Name: "test meal", Nutrition: nutrition}
}

func TestAggregateEmptyDay(t *testing.T) {
	goals := ComputeRDA(nil, ActivityModerate)
	totals := Aggregate(models.DayLog{}, goals)

	require.Len(t, totals.ByNutrient, len(goals))
	for _, g := range goals {
		require.Zero(t, totals.ByNutrient[g.Nutrient])
	}
	require.Empty(t, totals.Unrecognized)
}

func TestAggregateSumsAcrossItems(t *testing.T) {
	goals := ComputeRDA(nil, ActivityModerate)
	day := models.DayLog{
		Meals: []models.Meal{
			mealWith(models.NutrientMap{"Energy": {Amount: 500, Unit: "kcal"}, "Protein": {Amount: 20, Unit: "g"}}),
			mealWith(models.NutrientMap{"Energy": {Amount: 300, Unit: "kcal"}}),
		},
		Supplements: []models.Supplement{
			{Name: "multivitamin", Nutrition: models.NutrientMap{"Protein": {Amount: 2, Unit: "g"}}},
		},
	}

	totals := Aggregate(day, goals)
	require.Equal(t, float64(800), totals.ByNutrient["Energy"])
	require.Equal(t, float64(22), totals.ByNutrient["Protein"])
}

func TestAggregateOrderIndependent(t *testing.T) {
	goals := ComputeRDA(nil, ActivityModerate)
	a := mealWith(models.NutrientMap{"Energy": {Amount: 100}})
	b := mealWith(models.NutrientMap{"Energy": {Amount: 250}})

	forward := Aggregate(models.DayLog{Meals: []models.Meal{a, b}}, goals)
	reversed := Aggregate(models.DayLog{Meals: []models.Meal{b, a}}, goals)
	require.Equal(t, forward.ByNutrient, reversed.ByNutrient)
}

func TestAggregateResolvesAliases(t *testing.T) {
	goals := ComputeRDA(nil, ActivityModerate)
	day := models.DayLog{
		Meals: []models.Meal{
			mealWith(models.NutrientMap{
				"Calories":     {Amount: 400},
				"Carbs":        {Amount: 50, Unit: "g"},
				"Protein (g)":  {Amount: 10},
				"vitamin c":    {Amount: 30, Unit: "mg"},
				"Calcium (Ca)": {Amount: 200, Unit: "mg"},
			}),
		},
	}

	totals := Aggregate(day, goals)
	require.Equal(t, float64(400), totals.ByNutrient["Energy"])
	require.Equal(t, float64(50), totals.ByNutrient["Carbohydrates"])
	require.Equal(t, float64(10), totals.ByNutrient["Protein"])
	require.Equal(t, float64(30), totals.ByNutrient["Vitamin C"])
	require.Equal(t, float64(200), totals.ByNutrient["Calcium (Ca)"])
	require.Empty(t, totals.Unrecognized)
}

func TestAggregateTracksUnrecognized(t *testing.T) {
	goals := ComputeRDA(nil, ActivityModerate)
	day := models.DayLog{
		Meals: []models.Meal{
			mealWith(models.NutrientMap{
				"Caffeine": {Amount: 95, Unit: "mg"},
				"Energy":   {Amount: 5, Unit: "kcal"},
			}),
		},
	}

	totals := Aggregate(day, goals)
	require.Equal(t, float64(5), totals.ByNutrient["Energy"])
	require.Equal(t, float64(95), totals.Unrecognized["caffeine"])
}

func TestPercentOf(t *testing.T) {
	require.Equal(t, 50, PercentOf(50, 100))
	require.Equal(t, 100, PercentOf(100, 100))
	require.Equal(t, 100, PercentOf(500, 100)) // capped
	require.Equal(t, 75, PercentOf(74.6, 100)) // rounded, not truncated
}

func TestRawPercentOf(t *testing.T) {
	require.Equal(t, 500, RawPercentOf(500, 100))
	// a zero goal is treated as 1, never divided by
	require.Equal(t, 4000, RawPercentOf(40, 0))
	require.Equal(t, 0, RawPercentOf(0, 0))
}
