package models

import (
	"gorm.io/gorm"
)

// Meal is one logged meal on a calendar date. ItemID is the caller-visible
// identifier (creation timestamp in Unix milliseconds); it only has to be
// unique within one user's day, never globally.
type Meal struct {
	gorm.Model `json:"-"`
	UserID     uint        `gorm:"index:idx_meal_user_date;not null" json:"-"`
	Date       string      `gorm:"index:idx_meal_user_date;size:10;not null" json:"date"`
	ItemID     int64       `gorm:"index;not null" json:"id"`
	Name       string      `json:"name"`
	Items      StringList  `gorm:"type:text" json:"items"`
	Nutrition  NutrientMap `gorm:"type:text" json:"nutrition"`
	PhotoURL   string      `json:"photo_url,omitempty"`
}

// Supplement is one logged supplement on a calendar date.
type Supplement struct {
	gorm.Model `json:"-"`
	UserID     uint        `gorm:"index:idx_supp_user_date;not null" json:"-"`
	Date       string      `gorm:"index:idx_supp_user_date;size:10;not null" json:"date"`
	ItemID     int64       `gorm:"index;not null" json:"id"`
	Name       string      `json:"name"`
	Dose       string      `json:"dose"`
	Nutrition  NutrientMap `gorm:"type:text" json:"nutrition"`
}

// DayLog is everything logged for one calendar date. A date with no entries
// is represented by an empty DayLog, never by an error.
type DayLog struct {
	Meals       []Meal       `json:"meals"`
	Supplements []Supplement `json:"supplements"`
}

// Empty reports whether nothing at all was logged for the day. The calendar
// distinguishes this from a day whose logged items sum to zero nutrients.
func (d DayLog) Empty() bool {
	return len(d.Meals) == 0 && len(d.Supplements) == 0
}
