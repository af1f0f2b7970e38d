package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeNutrientKey(t *testing.T) {
	cases := map[string]string{
		"Protein":                       "protein",
		"Protein (g)":                   "protein",
		"  Vitamin   C  ":               "vitamin c",
		"Calcium (Ca)":                  "calcium",
		"Vitamin B5 (Pantothenic Acid)": "vitamin b5",
		"ENERGY":                        "energy",
		"":                              "",
	}
	for in, want := range cases {
		require.Equal(t, want, NormalizeNutrientKey(in), in)
	}
}

func TestCanonicalNutrient(t *testing.T) {
	cases := map[string]string{
		"Calories":     "Energy",
		"kcal":         "Energy",
		"Carbs":        "Carbohydrates",
		"carbohydrate": "Carbohydrates",
		"Niacin":       "Vitamin B3 (Niacin)",
		"thiamin":      "Vitamin B1 (Thiamine)",
		"Omega 3":      "Omega-3",
		"omega3":       "Omega-3",
		"Iron (Fe)":    "Iron (Fe)",
		"iron":         "Iron (Fe)",
		"Energy":       "Energy",
	}
	for in, want := range cases {
		got, ok := CanonicalNutrient(in)
		require.True(t, ok, in)
		require.Equal(t, want, got, in)
	}

	_, ok := CanonicalNutrient("Caffeine")
	require.False(t, ok)
}

func TestCatalogShape(t *testing.T) {
	names := CatalogNames()
	require.Len(t, names, 27)
	require.Equal(t, "Energy", names[0])
	require.Equal(t, "Iodine (I)", names[len(names)-1])

	seen := make(map[string]bool)
	for _, n := range Catalog() {
		require.False(t, seen[n.Name], n.Name)
		seen[n.Name] = true
		require.NotEmpty(t, n.DefaultUnit)
		require.Contains(t, n.Units, n.DefaultUnit)
	}
}
