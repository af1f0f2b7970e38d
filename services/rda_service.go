package services

import (
	"math"

	"github.com/OrangeSorbet/annavistara/models"
)

// ActivityLevel selects the Harris-Benedict activity multiplier.
type ActivityLevel string

const (
	ActivityLight    ActivityLevel = "light"
	ActivityModerate ActivityLevel = "moderate"
	ActivityHeavy    ActivityLevel = "heavy"
)

// activityMultipliers is the single source of truth for valid activity
// levels; it doubles as input validation in the controllers.
var activityMultipliers = map[ActivityLevel]float64{
	ActivityLight:    1.375,
	ActivityModerate: 1.55,
	ActivityHeavy:    1.725,
}

// ParseActivityLevel validates a query-string activity level. Empty input
// defaults to moderate.
func ParseActivityLevel(s string) (ActivityLevel, bool) {
	if s == "" {
		return ActivityModerate, true
	}
	lvl := ActivityLevel(s)
	_, ok := activityMultipliers[lvl]
	return lvl, ok
}

// RDAGoal is one nutrient's daily target. Target and Unit stay separate
// fields; they are never combined into a display string.
type RDAGoal struct {
	Nutrient string  `json:"nutrient"`
	Target   float64 `json:"target"`
	Unit     string  `json:"unit"`
	// HasReferenceValue is false for nutrients that only carry the
	// placeholder target of 1 because no reference value is on file.
	// Consumers may suppress percent displays for those.
	HasReferenceValue bool `json:"has_reference_value"`
}

// RDAGoalSet is an ordered goal list, catalog order, computed fresh per
// (profile, activity) pair and never persisted.
type RDAGoalSet []RDAGoal

// Goal returns the target for a canonical nutrient name.
func (s RDAGoalSet) Goal(nutrient string) (RDAGoal, bool) {
	for _, g := range s {
		if g.Nutrient == nutrient {
			return g, true
		}
	}
	return RDAGoal{}, false
}

// baseTarget is an entry of the reference table before personalization.
type baseTarget struct {
	value float64
	unit  string
	// perKg targets scale with body weight.
	perKg bool
}

// knownTargets holds the reference values we actually have (ICMR-NIN based).
// Everything else in the catalog keeps the placeholder target of 1 in its
// default unit; that reflects incomplete reference data, not a bug.
var knownTargets = map[string]baseTarget{
	"Energy":        {value: 2710, unit: "kcal"},
	"Protein":       {value: 0.83, unit: "g", perKg: true},
	"Carbohydrates": {value: 4, unit: "g", perKg: true},
	"Fat":           {value: 1, unit: "g", perKg: true},
	"Vitamin A":     {value: 1000, unit: "µg"},
	"Vitamin D":     {value: 15, unit: "µg"},
	"Vitamin C":     {value: 82, unit: "mg"},
	"Calcium (Ca)":  {value: 1050, unit: "mg"},
	"Iron (Fe)":     {value: 26, unit: "mg"},
	"Zinc (Zn)":     {value: 17.6, unit: "mg"},
	"Vitamin B12":   {value: 2.5, unit: "µg"},
}

// Default calendar targets for an incomplete profile (reference adult male).
const (
	defaultCalendarCalories = 2710
	defaultCalendarProtein  = 55
)

// baseGoals builds the un-personalized reference table: catalog order, then
// the known-value nutrients absent from the catalog (Vitamin D) appended.
func baseGoals() []RDAGoal {
	goals := make([]RDAGoal, 0, len(models.Catalog())+1)
	seen := make(map[string]bool, len(models.Catalog()))
	for _, n := range models.Catalog() {
		g := RDAGoal{Nutrient: n.Name, Target: 1, Unit: n.DefaultUnit}
		if kt, ok := knownTargets[n.Name]; ok {
			g.Target = kt.value
			g.Unit = kt.unit
			g.HasReferenceValue = true
		}
		goals = append(goals, g)
		seen[n.Name] = true
	}
	for _, name := range []string{"Vitamin D"} {
		if kt, ok := knownTargets[name]; ok && !seen[name] {
			goals = append(goals, RDAGoal{Nutrient: name, Target: kt.value, Unit: kt.unit, HasReferenceValue: true})
		}
	}
	return goals
}

// ComputeBMR is the Harris-Benedict basal metabolic rate (male coefficients;
// the tracker carries no sex dimension).
func ComputeBMR(weightKg, heightCm float64, age int) float64 {
	return 88.362 + 13.397*weightKg + 4.799*heightCm - 5.677*float64(age)
}

// ComputeRDA derives the daily goal set for a profile and activity level.
// Pure function of its inputs. An incomplete or nil profile yields the fixed
// reference table regardless of activity level.
func ComputeRDA(profile *models.Profile, activity ActivityLevel) RDAGoalSet {
	goals := baseGoals()
	if !profile.Complete() {
		return goals
	}

	mult, ok := activityMultipliers[activity]
	if !ok {
		mult = activityMultipliers[ActivityModerate]
	}
	calories := math.Round(ComputeBMR(profile.WeightKg, profile.HeightCm, profile.Age) * mult)

	for i := range goals {
		switch {
		case goals[i].Nutrient == "Energy":
			goals[i].Target = calories
		case knownTargets[goals[i].Nutrient].perKg:
			goals[i].Target = math.Round(knownTargets[goals[i].Nutrient].value * profile.WeightKg)
		}
	}
	return goals
}

// calendarTargets returns the Energy and Protein goals the calendar
// classifier compares against. Incomplete profiles use the fixed reference
// pair rather than the raw per-kg base values.
func calendarTargets(profile *models.Profile, activity ActivityLevel) (calories, protein float64) {
	if !profile.Complete() {
		return defaultCalendarCalories, defaultCalendarProtein
	}
	goals := ComputeRDA(profile, activity)
	if g, ok := goals.Goal("Energy"); ok {
		calories = g.Target
	}
	if g, ok := goals.Goal("Protein"); ok {
		protein = g.Target
	}
	return calories, protein
}
