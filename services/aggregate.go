package services

import (
	"math"

	"github.com/OrangeSorbet/annavistara/models"
)

// Totals is the result of summing a day's nutrition against a goal set.
type Totals struct {
	// ByNutrient holds one entry per goal-set nutrient, zero-initialized,
	// keyed by canonical name.
	ByNutrient map[string]float64
	// Unrecognized collects quantities whose keys matched no goal-set
	// nutrient. They are tracked for debugging instead of silently dropped.
	Unrecognized map[string]float64
}

// Aggregate sums nutrient quantities across every meal and supplement of a
// day into per-nutrient totals. Pure addition: the result is deterministic
// and independent of item order. Keys are normalized (trim, case-fold,
// parenthesized unit annotations stripped, common aliases resolved) before
// the goal-set match.
func Aggregate(day models.DayLog, goals RDAGoalSet) Totals {
	totals := Totals{
		ByNutrient:   make(map[string]float64, len(goals)),
		Unrecognized: make(map[string]float64),
	}
	idx := make(map[string]string, len(goals))
	for _, g := range goals {
		totals.ByNutrient[g.Nutrient] = 0
		idx[models.NormalizeNutrientKey(g.Nutrient)] = g.Nutrient
	}

	add := func(nutrition models.NutrientMap) {
		for key, amt := range nutrition {
			if canon, ok := resolveNutrient(key, idx); ok {
				totals.ByNutrient[canon] += amt.Amount
			} else {
				totals.Unrecognized[models.NormalizeNutrientKey(key)] += amt.Amount
			}
		}
	}
	for _, m := range day.Meals {
		add(m.Nutrition)
	}
	for _, s := range day.Supplements {
		add(s.Nutrition)
	}
	return totals
}

// resolveNutrient matches a raw nutrition key against the goal-set index,
// going through the catalog aliases when the direct normalized form misses.
func resolveNutrient(raw string, idx map[string]string) (string, bool) {
	norm := models.NormalizeNutrientKey(raw)
	if canon, ok := idx[norm]; ok {
		return canon, true
	}
	if catalogName, ok := models.CanonicalNutrient(raw); ok {
		if canon, ok := idx[models.NormalizeNutrientKey(catalogName)]; ok {
			return canon, true
		}
	}
	return "", false
}

// PercentOf is the capped percent-of-goal used for at-a-glance display.
// A goal of zero or less is treated as 1 so division never blows up, and the
// result is clamped to 100.
func PercentOf(total, goal float64) int {
	p := RawPercentOf(total, goal)
	if p > 100 {
		return 100
	}
	return p
}

// RawPercentOf is the uncapped percent-of-goal. Export uses it so audits can
// see overage the display donut hides.
func RawPercentOf(total, goal float64) int {
	if goal <= 0 {
		goal = 1
	}
	return int(math.Round(total / goal * 100))
}
