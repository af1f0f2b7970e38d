package services

import (
	"errors"
	"time"

	"github.com/OrangeSorbet/annavistara/models"

	"gorm.io/gorm"
)

// LogService owns the daily log. Every mutation is one transaction; totals
// are recomputed from scratch by readers, so there is no cached state to
// invalidate.
type LogService struct {
	db *gorm.DB
}

func NewLogService(db *gorm.DB) *LogService {
	return &LogService{db: db}
}

// NewItemID issues the caller-visible item identifier: the creation
// timestamp in Unix milliseconds, which is unique enough within one day's
// log (the only invariant required).
func NewItemID() int64 {
	return time.Now().UnixMilli()
}

// todayDate is the log's date key for right now, in the tracker's ISO form.
func todayDate() string {
	return time.Now().Format("2006-01-02")
}

func (s *LogService) AddMeal(userID uint, date string, meal models.Meal) (models.Meal, error) {
	meal.UserID = userID
	meal.Date = date
	if meal.ItemID == 0 {
		meal.ItemID = NewItemID()
	}
	if meal.Nutrition == nil {
		meal.Nutrition = models.NutrientMap{}
	}
	if err := s.db.Create(&meal).Error; err != nil {
		return models.Meal{}, err
	}
	return meal, nil
}

func (s *LogService) AddSupplement(userID uint, date string, sup models.Supplement) (models.Supplement, error) {
	sup.UserID = userID
	sup.Date = date
	if sup.ItemID == 0 {
		sup.ItemID = NewItemID()
	}
	if sup.Nutrition == nil {
		sup.Nutrition = models.NutrientMap{}
	}
	if err := s.db.Create(&sup).Error; err != nil {
		return models.Supplement{}, err
	}
	return sup, nil
}

// UpdateMeal replaces the meal matching itemID within that date's log.
// A missing id surfaces as ErrItemNotFound rather than a silent no-op.
func (s *LogService) UpdateMeal(userID uint, date string, itemID int64, upd models.Meal) (models.Meal, error) {
	var meal models.Meal
	err := s.db.
		Where("user_id = ? AND date = ? AND item_id = ?", userID, date, itemID).
		First(&meal).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Meal{}, ErrItemNotFound
		}
		return models.Meal{}, err
	}
	meal.Name = upd.Name
	meal.Items = upd.Items
	meal.Nutrition = upd.Nutrition
	if upd.PhotoURL != "" {
		meal.PhotoURL = upd.PhotoURL
	}
	if meal.Nutrition == nil {
		meal.Nutrition = models.NutrientMap{}
	}
	if err := s.db.Save(&meal).Error; err != nil {
		return models.Meal{}, err
	}
	return meal, nil
}

func (s *LogService) UpdateSupplement(userID uint, date string, itemID int64, upd models.Supplement) (models.Supplement, error) {
	var sup models.Supplement
	err := s.db.
		Where("user_id = ? AND date = ? AND item_id = ?", userID, date, itemID).
		First(&sup).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Supplement{}, ErrItemNotFound
		}
		return models.Supplement{}, err
	}
	sup.Name = upd.Name
	sup.Dose = upd.Dose
	sup.Nutrition = upd.Nutrition
	if sup.Nutrition == nil {
		sup.Nutrition = models.NutrientMap{}
	}
	if err := s.db.Save(&sup).Error; err != nil {
		return models.Supplement{}, err
	}
	return sup, nil
}

// DeleteMeal removes the matching meal; deleting an absent id is a no-op.
func (s *LogService) DeleteMeal(userID uint, date string, itemID int64) error {
	return s.db.
		Where("user_id = ? AND date = ? AND item_id = ?", userID, date, itemID).
		Delete(&models.Meal{}).Error
}

func (s *LogService) DeleteSupplement(userID uint, date string, itemID int64) error {
	return s.db.
		Where("user_id = ? AND date = ? AND item_id = ?", userID, date, itemID).
		Delete(&models.Supplement{}).Error
}

// GetDay returns the stored DayLog for a date, or an empty one. It never
// fails on an unknown date.
func (s *LogService) GetDay(userID uint, date string) (models.DayLog, error) {
	var day models.DayLog
	if err := s.db.
		Where("user_id = ? AND date = ?", userID, date).
		Order("item_id ASC").
		Find(&day.Meals).Error; err != nil {
		return models.DayLog{}, err
	}
	if err := s.db.
		Where("user_id = ? AND date = ?", userID, date).
		Order("item_id ASC").
		Find(&day.Supplements).Error; err != nil {
		return models.DayLog{}, err
	}
	return day, nil
}

// GetRange returns a date-keyed map of DayLogs for from..to inclusive
// (ISO YYYY-MM-DD strings compare correctly). Dates with no entries are
// absent from the map.
func (s *LogService) GetRange(userID uint, from, to string) (map[string]models.DayLog, error) {
	var meals []models.Meal
	if err := s.db.
		Where("user_id = ? AND date >= ? AND date <= ?", userID, from, to).
		Order("date ASC, item_id ASC").
		Find(&meals).Error; err != nil {
		return nil, err
	}
	var sups []models.Supplement
	if err := s.db.
		Where("user_id = ? AND date >= ? AND date <= ?", userID, from, to).
		Order("date ASC, item_id ASC").
		Find(&sups).Error; err != nil {
		return nil, err
	}

	out := make(map[string]models.DayLog)
	for _, m := range meals {
		day := out[m.Date]
		day.Meals = append(day.Meals, m)
		out[m.Date] = day
	}
	for _, sp := range sups {
		day := out[sp.Date]
		day.Supplements = append(day.Supplements, sp)
		out[sp.Date] = day
	}
	return out, nil
}

// ReplaceAll swaps the user's entire log for the given date-keyed map.
// Used by backup restore; runs in one transaction so a failed restore never
// leaves the log half-replaced.
func (s *LogService) ReplaceAll(userID uint, log map[string]models.DayLog) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("user_id = ?", userID).Delete(&models.Meal{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("user_id = ?", userID).Delete(&models.Supplement{}).Error; err != nil {
			return err
		}
		for date, day := range log {
			for _, m := range day.Meals {
				m.ID = 0
				m.UserID = userID
				m.Date = date
				if m.ItemID == 0 {
					m.ItemID = NewItemID()
				}
				if err := tx.Create(&m).Error; err != nil {
					return err
				}
			}
			for _, sp := range day.Supplements {
				sp.ID = 0
				sp.UserID = userID
				sp.Date = date
				if sp.ItemID == 0 {
					sp.ItemID = NewItemID()
				}
				if err := tx.Create(&sp).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
}
