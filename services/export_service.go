package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/OrangeSorbet/annavistara/models"

	"gorm.io/gorm"
)

// ExportService turns a date range of logs into the row-oriented table any
// spreadsheet-writing collaborator can consume. The export deliberately
// shows raw, uncapped percentages: export is for audit, the UI donut is for
// at-a-glance status.
type ExportService struct {
	db  *gorm.DB
	log *LogService
}

func NewExportService(db *gorm.DB, log *LogService) *ExportService {
	return &ExportService{db: db, log: log}
}

// ExportRow is one item line: Day/Month locate it, Values follow the goal
// column order.
type ExportRow struct {
	Day    string    `json:"day"`
	Month  string    `json:"month"`
	Item   string    `json:"item"`
	Detail string    `json:"detail"`
	Values []float64 `json:"values"`
}

// ExportSection holds one date's item rows plus the summary rows appended
// after them: totals, the RDA targets, and raw percent achieved.
type ExportSection struct {
	Date            string      `json:"date"`
	Rows            []ExportRow `json:"rows"`
	Totals          []float64   `json:"totals"`
	Goals           []float64   `json:"goals"`
	PercentAchieved []int       `json:"percent_achieved"`
}

// ExportTable is the whole export: a header row and one section per logged
// date, sorted ascending so months group together.
type ExportTable struct {
	Header   []string        `json:"header"`
	Sections []ExportSection `json:"sections"`
}

// Export builds the table for from..to inclusive (ISO dates).
func (s *ExportService) Export(userID uint, from, to string, activity ActivityLevel) (*ExportTable, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, err
	}
	goals := ComputeRDA(&user.Profile, activity)

	logs, err := s.log.GetRange(userID, from, to)
	if err != nil {
		return nil, err
	}
	dates := make([]string, 0, len(logs))
	for d := range logs {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	header := []string{"Day", "Month", "Item", "Details"}
	for _, g := range goals {
		header = append(header, g.Nutrient)
	}
	table := &ExportTable{Header: header}

	for _, date := range dates {
		day := logs[date]
		section := ExportSection{Date: date}
		dayNo, monthName := splitDate(date)

		appendItem := func(name, detail string, nutrition models.NutrientMap) {
			row := ExportRow{Day: dayNo, Month: monthName, Item: name, Detail: detail}
			row.Values = nutrientColumns(nutrition, goals)
			section.Rows = append(section.Rows, row)
		}
		for _, m := range day.Meals {
			appendItem(m.Name, strings.Join(m.Items, ", "), m.Nutrition)
		}
		for _, sp := range day.Supplements {
			appendItem(sp.Name, sp.Dose, sp.Nutrition)
		}

		totals := Aggregate(day, goals)
		for _, g := range goals {
			total := totals.ByNutrient[g.Nutrient]
			section.Totals = append(section.Totals, total)
			section.Goals = append(section.Goals, g.Target)
			section.PercentAchieved = append(section.PercentAchieved, RawPercentOf(total, g.Target))
		}
		table.Sections = append(table.Sections, section)
	}
	return table, nil
}

// nutrientColumns projects one item's nutrition onto the goal column order,
// so re-summing any column reproduces the aggregator's total for it.
func nutrientColumns(nutrition models.NutrientMap, goals RDAGoalSet) []float64 {
	idx := make(map[string]string, len(goals))
	for _, g := range goals {
		idx[models.NormalizeNutrientKey(g.Nutrient)] = g.Nutrient
	}
	byGoal := make(map[string]float64, len(goals))
	for key, amt := range nutrition {
		if canon, ok := resolveNutrient(key, idx); ok {
			byGoal[canon] += amt.Amount
		}
	}
	values := make([]float64, len(goals))
	for i, g := range goals {
		values[i] = byGoal[g.Nutrient]
	}
	return values
}

func splitDate(date string) (day, month string) {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date, ""
	}
	return strconv.Itoa(t.Day()), t.Month().String()
}

// WriteCSV renders the table. Sections are separated by a blank line; each
// gets its item rows followed by Total, RDA and "% RDA Met" rows, matching
// the sheet layout of the spreadsheet export.
func (s *ExportService) WriteCSV(w io.Writer, table *ExportTable) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(table.Header); err != nil {
		return err
	}
	for _, section := range table.Sections {
		for _, row := range section.Rows {
			rec := []string{row.Day, row.Month, row.Item, row.Detail}
			for _, v := range row.Values {
				rec = append(rec, formatNumber(v))
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		dayNo, monthName := splitDate(section.Date)
		if err := cw.Write(summaryRecord(dayNo, monthName, "Total", section.Totals)); err != nil {
			return err
		}
		if err := cw.Write(summaryRecord(dayNo, monthName, "RDA", section.Goals)); err != nil {
			return err
		}
		pctRec := []string{dayNo, monthName, "", "% RDA Met"}
		for _, p := range section.PercentAchieved {
			pctRec = append(pctRec, fmt.Sprintf("%d%%", p))
		}
		if err := cw.Write(pctRec); err != nil {
			return err
		}
		if err := cw.Write([]string{}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func summaryRecord(day, month, label string, values []float64) []string {
	rec := []string{day, month, "", label}
	for _, v := range values {
		rec = append(rec, formatNumber(v))
	}
	return rec
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
