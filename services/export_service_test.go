package services

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/OrangeSorbet/annavistara/models"

	"github.com/stretchr/testify/require"
)

func TestExportTable(t *testing.T) {
	db := testDB(t)
	user := testUser(t, db, completeProfile())
	logSvc := NewLogService(db)
	svc := NewExportService(db, logSvc)

	_, err := logSvc.AddMeal(user.ID, "2026-08-01", models.Meal{
		Name:      "breakfast",
		Items:     models.StringList{"eggs", "toast"},
		Nutrition: models.NutrientMap{"Energy": {Amount: 400, Unit: "kcal"}, "Protein": {Amount: 20, Unit: "g"}},
	})
	require.NoError(t, err)
	_, err = logSvc.AddMeal(user.ID, "2026-08-01", models.Meal{
		Name:      "dinner",
		Nutrition: models.NutrientMap{"Calories": {Amount: 5000}},
	})
	require.NoError(t, err)
	_, err = logSvc.AddSupplement(user.ID, "2026-08-02", models.Supplement{
		Name:      "vitamin C",
		Dose:      "1 tablet",
		Nutrition: models.NutrientMap{"Vitamin C": {Amount: 500, Unit: "mg"}},
	})
	require.NoError(t, err)

	table, err := svc.Export(user.ID, "2026-08-01", "2026-08-31", ActivityModerate)
	require.NoError(t, err)

	goals := func() RDAGoalSet {
		p := completeProfile()
		return ComputeRDA(&p, ActivityModerate)
	}()
	require.Equal(t, 4+len(goals), len(table.Header))
	require.Equal(t, []string{"Day", "Month", "Item", "Details"}, table.Header[:4])
	require.Equal(t, "Energy", table.Header[4])

	require.Len(t, table.Sections, 2)
	first := table.Sections[0]
	require.Equal(t, "2026-08-01", first.Date)
	require.Len(t, first.Rows, 2)
	require.Equal(t, "1", first.Rows[0].Day)
	require.Equal(t, "August", first.Rows[0].Month)
	require.Equal(t, "eggs, toast", first.Rows[0].Detail)

	// column totals reproduce the aggregator exactly, aliases included
	day, err := logSvc.GetDay(user.ID, "2026-08-01")
	require.NoError(t, err)
	totals := Aggregate(day, goals)
	for i, g := range goals {
		require.Equal(t, totals.ByNutrient[g.Nutrient], first.Totals[i], g.Nutrient)
	}
	require.Equal(t, float64(5400), first.Totals[0])

	// export percents are uncapped: 5400/2873 kcal is 188%
	require.Equal(t, 188, first.PercentAchieved[0])

	// re-summing item rows per column reproduces the totals row
	for col := range goals {
		var sum float64
		for _, row := range first.Rows {
			sum += row.Values[col]
		}
		require.Equal(t, first.Totals[col], sum)
	}
}

func TestExportCSV(t *testing.T) {
	db := testDB(t)
	user := testUser(t, db, completeProfile())
	logSvc := NewLogService(db)
	svc := NewExportService(db, logSvc)

	_, err := logSvc.AddMeal(user.ID, "2026-08-01", models.Meal{
		Name:      "lunch",
		Nutrition: models.NutrientMap{"Energy": {Amount: 700, Unit: "kcal"}},
	})
	require.NoError(t, err)

	table, err := svc.Export(user.ID, "2026-08-01", "2026-08-01", ActivityModerate)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, svc.WriteCSV(&buf, table))

	r := csv.NewReader(&buf)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	require.NoError(t, err)

	// header + 1 item row + Total + RDA + percent rows
	require.Len(t, records, 5)
	require.Equal(t, "Day", records[0][0])
	require.Equal(t, "lunch", records[1][2])
	require.Equal(t, "Total", records[2][3])
	require.Equal(t, "700", records[2][4])
	require.Equal(t, "RDA", records[3][3])
	require.Equal(t, "2873", records[3][4])
	require.Equal(t, "% RDA Met", records[4][3])
	require.Equal(t, "24%", records[4][4])
}
