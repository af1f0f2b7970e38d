package services

import (
	"fmt"
	"time"

	"github.com/OrangeSorbet/annavistara/models"

	"gorm.io/gorm"
)

// ReportService joins the aggregator with the RDA calculator to produce the
// per-nutrient day summary and the calendar classification.
type ReportService struct {
	db  *gorm.DB
	log *LogService
}

func NewReportService(db *gorm.DB, log *LogService) *ReportService {
	return &ReportService{db: db, log: log}
}

// NutrientSummary is one row of the day summary progress view.
type NutrientSummary struct {
	Nutrient string  `json:"nutrient"`
	Total    float64 `json:"total"`
	Goal     float64 `json:"goal"`
	Unit     string  `json:"unit"`
	// Percent is capped at 100 for the display donut; RawPercent is not.
	Percent           int    `json:"percent"`
	RawPercent        int    `json:"raw_percent"`
	Status            string `json:"status"`
	HasReferenceValue bool   `json:"has_reference_value"`
}

// DaySummary is the full progress view for one date.
type DaySummary struct {
	Date      string            `json:"date"`
	Activity  ActivityLevel     `json:"activity"`
	Nutrients []NutrientSummary `json:"nutrients"`
	// Unrecognized lists quantities whose keys matched no tracked nutrient.
	Unrecognized map[string]float64 `json:"unrecognized,omitempty"`
}

// statusFor bands a capped percent for display.
func statusFor(percent int) string {
	switch {
	case percent >= 90:
		return "good"
	case percent >= 70:
		return "ok"
	case percent >= 50:
		return "low"
	default:
		return "poor"
	}
}

// Calendar day statuses. NoData is distinct from Under50: a day with a
// logged item whose nutrients sum to zero is Under50, a day with no log at
// all is NoData.
const (
	CalStatusFull        = "full"
	CalStatusCaloriesMet = "calories-met"
	CalStatusOver80      = "over-80"
	CalStatusOver50      = "over-50"
	CalStatusUnder50     = "under-50"
	CalStatusNoData      = "no-data"
)

func (s *ReportService) profileFor(userID uint) (*models.Profile, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, err
	}
	return &user.Profile, nil
}

// DaySummary aggregates one date's log against the personalized goals.
func (s *ReportService) DaySummary(userID uint, date string, activity ActivityLevel) (*DaySummary, error) {
	profile, err := s.profileFor(userID)
	if err != nil {
		return nil, err
	}
	day, err := s.log.GetDay(userID, date)
	if err != nil {
		return nil, err
	}
	goals := ComputeRDA(profile, activity)
	totals := Aggregate(day, goals)

	out := &DaySummary{Date: date, Activity: activity}
	for _, g := range goals {
		total := totals.ByNutrient[g.Nutrient]
		pct := PercentOf(total, g.Target)
		out.Nutrients = append(out.Nutrients, NutrientSummary{
			Nutrient:          g.Nutrient,
			Total:             total,
			Goal:              g.Target,
			Unit:              g.Unit,
			Percent:           pct,
			RawPercent:        RawPercentOf(total, g.Target),
			Status:            statusFor(pct),
			HasReferenceValue: g.HasReferenceValue,
		})
	}
	if len(totals.Unrecognized) > 0 {
		out.Unrecognized = totals.Unrecognized
	}
	return out, nil
}

// classifyDay buckets one day by how far its Energy and Protein totals got
// toward the goals. Only those two nutrients drive the calendar color.
func classifyDay(day models.DayLog, goals RDAGoalSet, calorieGoal, proteinGoal float64) string {
	if day.Empty() {
		return CalStatusNoData
	}
	totals := Aggregate(day, goals)
	caloriePct := float64(RawPercentOf(totals.ByNutrient["Energy"], calorieGoal))
	proteinPct := float64(RawPercentOf(totals.ByNutrient["Protein"], proteinGoal))
	switch {
	case caloriePct >= 95 && proteinPct >= 95:
		return CalStatusFull
	case caloriePct >= 95:
		return CalStatusCaloriesMet
	case caloriePct >= 80:
		return CalStatusOver80
	case caloriePct >= 50:
		return CalStatusOver50
	default:
		return CalStatusUnder50
	}
}

// CalendarDay is one cell of the month view.
type CalendarDay struct {
	Date   string `json:"date"`
	Status string `json:"status"`
}

// CalendarMonth classifies every day of a month. Future-proofing is not
// attempted: future dates simply come back as no-data.
func (s *ReportService) CalendarMonth(userID uint, year int, month time.Month, activity ActivityLevel) ([]CalendarDay, error) {
	profile, err := s.profileFor(userID)
	if err != nil {
		return nil, err
	}
	goals := ComputeRDA(profile, activity)
	calorieGoal, proteinGoal := calendarTargets(profile, activity)

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	logs, err := s.log.GetRange(userID, first.Format("2006-01-02"), last.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}

	days := make([]CalendarDay, 0, last.Day())
	for d := 1; d <= last.Day(); d++ {
		date := fmt.Sprintf("%04d-%02d-%02d", year, int(month), d)
		days = append(days, CalendarDay{
			Date:   date,
			Status: classifyDay(logs[date], goals, calorieGoal, proteinGoal),
		})
	}
	return days, nil
}

// DayStatus classifies a single date.
func (s *ReportService) DayStatus(userID uint, date string, activity ActivityLevel) (string, error) {
	profile, err := s.profileFor(userID)
	if err != nil {
		return "", err
	}
	day, err := s.log.GetDay(userID, date)
	if err != nil {
		return "", err
	}
	goals := ComputeRDA(profile, activity)
	calorieGoal, proteinGoal := calendarTargets(profile, activity)
	return classifyDay(day, goals, calorieGoal, proteinGoal), nil
}
