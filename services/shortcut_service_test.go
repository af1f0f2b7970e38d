package services

import (
	"testing"

	"github.com/OrangeSorbet/annavistara/models"

	"github.com/stretchr/testify/require"
)

func TestShortcutKeywordNormalization(t *testing.T) {
	db := testDB(t)
	user := testUser(t, db, completeProfile())
	svc := NewShortcutService(db)

	saved, err := svc.Save(user.ID, models.ShortcutMeal, models.Shortcut{
		Keyword:   " ProteinShake ",
		Name:      "Protein shake",
		Items:     models.StringList{"whey", "milk"},
		Nutrition: models.NutrientMap{"Protein": {Amount: 30, Unit: "g"}},
	})
	require.NoError(t, err)
	require.Equal(t, "proteinshake", saved.Keyword)

	for _, lookup := range []string{"proteinshake", "PROTEINSHAKE", "  ProteinShake  "} {
		sc, err := svc.Resolve(user.ID, models.ShortcutMeal, lookup)
		require.NoError(t, err)
		require.Equal(t, "Protein shake", sc.Name)
	}
}

func TestShortcutResolveMiss(t *testing.T) {
	db := testDB(t)
	user := testUser(t, db, completeProfile())
	svc := NewShortcutService(db)

	_, err := svc.Resolve(user.ID, models.ShortcutMeal, "nope")
	require.ErrorIs(t, err, ErrShortcutNotFound)

	_, err = svc.Resolve(user.ID, models.ShortcutMeal, "   ")
	require.ErrorIs(t, err, ErrShortcutNotFound)
}

func TestShortcutKindsAreDisjoint(t *testing.T) {
	db := testDB(t)
	user := testUser(t, db, completeProfile())
	svc := NewShortcutService(db)

	_, err := svc.Save(user.ID, models.ShortcutSupplement, models.Shortcut{
		Keyword: "d3", Name: "Vitamin D3", Dose: "1 capsule",
	})
	require.NoError(t, err)

	_, err = svc.Resolve(user.ID, models.ShortcutMeal, "d3")
	require.ErrorIs(t, err, ErrShortcutNotFound)

	sc, err := svc.Resolve(user.ID, models.ShortcutSupplement, "d3")
	require.NoError(t, err)
	require.Equal(t, "Vitamin D3", sc.Name)
}

func TestShortcutSaveUpserts(t *testing.T) {
	db := testDB(t)
	user := testUser(t, db, completeProfile())
	svc := NewShortcutService(db)

	_, err := svc.Save(user.ID, models.ShortcutMeal, models.Shortcut{Keyword: "oats", Name: "Plain oats"})
	require.NoError(t, err)
	_, err = svc.Save(user.ID, models.ShortcutMeal, models.Shortcut{Keyword: "Oats", Name: "Masala oats"})
	require.NoError(t, err)

	list, err := svc.List(user.ID, models.ShortcutMeal)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "Masala oats", list[0].Name)
}

func TestShortcutResolveReturnsCopy(t *testing.T) {
	db := testDB(t)
	user := testUser(t, db, completeProfile())
	svc := NewShortcutService(db)

	_, err := svc.Save(user.ID, models.ShortcutMeal, models.Shortcut{
		Keyword:   "shake",
		Name:      "Shake",
		Nutrition: models.NutrientMap{"Protein": {Amount: 30, Unit: "g"}},
	})
	require.NoError(t, err)

	first, err := svc.Resolve(user.ID, models.ShortcutMeal, "shake")
	require.NoError(t, err)
	first.Nutrition["Protein"] = models.NutrientAmount{Amount: 999}

	second, err := svc.Resolve(user.ID, models.ShortcutMeal, "shake")
	require.NoError(t, err)
	require.Equal(t, float64(30), second.Nutrition["Protein"].Amount)
}

func TestShortcutReplaceAll(t *testing.T) {
	db := testDB(t)
	user := testUser(t, db, completeProfile())
	svc := NewShortcutService(db)

	_, err := svc.Save(user.ID, models.ShortcutMeal, models.Shortcut{Keyword: "old", Name: "Old"})
	require.NoError(t, err)

	err = svc.ReplaceAll(user.ID, models.ShortcutMeal, map[string]models.Shortcut{
		"New One": {Name: "New"},
	})
	require.NoError(t, err)

	_, err = svc.Resolve(user.ID, models.ShortcutMeal, "old")
	require.ErrorIs(t, err, ErrShortcutNotFound)

	sc, err := svc.Resolve(user.ID, models.ShortcutMeal, "new one")
	require.NoError(t, err)
	require.Equal(t, "New", sc.Name)
}
