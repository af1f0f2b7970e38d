package models

import "strings"

// Nutrient is one entry of the fixed catalog the app tracks and reports on.
type Nutrient struct {
	Name        string   `json:"name"`
	Units       []string `json:"units"`
	DefaultUnit string   `json:"default_unit"`
}

// catalog is the full set of recognized nutrients. Read-only configuration;
// order matters because goal sets and export columns follow it.
var catalog = []Nutrient{
	{Name: "Energy", Units: []string{"kcal"}, DefaultUnit: "kcal"},
	{Name: "Protein", Units: []string{"g", "mg"}, DefaultUnit: "g"},
	{Name: "Carbohydrates", Units: []string{"g", "mg"}, DefaultUnit: "g"},
	{Name: "Fat", Units: []string{"g", "mg"}, DefaultUnit: "g"},
	{Name: "Saturated Fat", Units: []string{"g", "mg"}, DefaultUnit: "g"},
	{Name: "Unsaturated Fat", Units: []string{"g", "mg"}, DefaultUnit: "g"},
	{Name: "Cholesterol", Units: []string{"mg"}, DefaultUnit: "mg"},
	{Name: "Amino Acids", Units: []string{"g", "mg"}, DefaultUnit: "g"},
	{Name: "Omega-3", Units: []string{"g", "mg"}, DefaultUnit: "g"},
	{Name: "Vitamin C", Units: []string{"mg", "µg"}, DefaultUnit: "mg"},
	{Name: "Vitamin B3 (Niacin)", Units: []string{"mg", "µg"}, DefaultUnit: "mg"},
	{Name: "Vitamin E", Units: []string{"mg", "µg"}, DefaultUnit: "mg"},
	{Name: "Vitamin B5 (Pantothenic Acid)", Units: []string{"mg", "µg"}, DefaultUnit: "mg"},
	{Name: "Vitamin A", Units: []string{"µg", "IU"}, DefaultUnit: "µg"},
	{Name: "Vitamin B6", Units: []string{"mg", "µg"}, DefaultUnit: "mg"},
	{Name: "Vitamin B2 (Riboflavin)", Units: []string{"mg", "µg"}, DefaultUnit: "mg"},
	{Name: "Vitamin B1 (Thiamine)", Units: []string{"mg", "µg"}, DefaultUnit: "mg"},
	{Name: "Vitamin B12", Units: []string{"µg"}, DefaultUnit: "µg"},
	{Name: "Magnesium (Mg)", Units: []string{"mg", "µg"}, DefaultUnit: "mg"},
	{Name: "Chloride", Units: []string{"mg", "µg"}, DefaultUnit: "mg"},
	{Name: "Sodium (Na)", Units: []string{"mg", "µg"}, DefaultUnit: "mg"},
	{Name: "Calcium (Ca)", Units: []string{"mg", "µg"}, DefaultUnit: "mg"},
	{Name: "Iron (Fe)", Units: []string{"mg", "µg"}, DefaultUnit: "mg"},
	{Name: "Zinc (Zn)", Units: []string{"mg", "µg"}, DefaultUnit: "mg"},
	{Name: "Manganese (Mn)", Units: []string{"mg", "µg"}, DefaultUnit: "mg"},
	{Name: "Copper (Cu)", Units: []string{"mg", "µg"}, DefaultUnit: "mg"},
	{Name: "Iodine (I)", Units: []string{"µg"}, DefaultUnit: "µg"},
}

// aliases maps normalized external spellings onto canonical catalog names.
// The AI collaborator is not consistent about naming ("Calories" vs "Energy",
// "Carbs" vs "Carbohydrates"), so the match has to absorb the common variants.
var aliases = map[string]string{
	"calories":         "Energy",
	"calorie":          "Energy",
	"kcal":             "Energy",
	"carbs":            "Carbohydrates",
	"carb":             "Carbohydrates",
	"carbohydrate":     "Carbohydrates",
	"niacin":           "Vitamin B3 (Niacin)",
	"riboflavin":       "Vitamin B2 (Riboflavin)",
	"thiamine":         "Vitamin B1 (Thiamine)",
	"thiamin":          "Vitamin B1 (Thiamine)",
	"pantothenic acid": "Vitamin B5 (Pantothenic Acid)",
	"omega 3":          "Omega-3",
	"omega3":           "Omega-3",
}

var catalogIndex = buildCatalogIndex()

func buildCatalogIndex() map[string]string {
	idx := make(map[string]string, len(catalog)+len(aliases))
	for _, n := range catalog {
		idx[NormalizeNutrientKey(n.Name)] = n.Name
	}
	for k, v := range aliases {
		idx[k] = v
	}
	return idx
}

// Catalog returns the ordered nutrient catalog. Callers must not mutate it.
func Catalog() []Nutrient {
	return catalog
}

// CatalogNames returns the catalog's canonical names in order.
func CatalogNames() []string {
	names := make([]string, len(catalog))
	for i, n := range catalog {
		names[i] = n.Name
	}
	return names
}

// NormalizeNutrientKey lower-cases, strips parenthesized annotations
// ("Protein (g)" → "protein", "Calcium (Ca)" → "calcium") and collapses
// whitespace. Both catalog names and incoming keys go through it, so the two
// sides meet in the middle.
func NormalizeNutrientKey(raw string) string {
	var b strings.Builder
	depth := 0
	for _, r := range raw {
		switch r {
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		default:
			if depth == 0 {
				b.WriteRune(r)
			}
		}
	}
	return strings.Join(strings.Fields(strings.ToLower(b.String())), " ")
}

// CanonicalNutrient resolves a free-form nutrient key to its catalog name.
func CanonicalNutrient(raw string) (string, bool) {
	name, ok := catalogIndex[NormalizeNutrientKey(raw)]
	return name, ok
}
