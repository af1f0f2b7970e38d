package models

import (
	"gorm.io/gorm"
)

// ShortcutKind separates the two disjoint shortcut tables.
type ShortcutKind string

const (
	ShortcutMeal       ShortcutKind = "meal"
	ShortcutSupplement ShortcutKind = "supplement"
)

// Shortcut is a user-saved template: a keyword mapped to a canned item so a
// known meal or supplement can be logged without calling the analyzer.
// Keyword is stored lower-cased and trimmed; lookup is exact match only.
type Shortcut struct {
	gorm.Model `json:"-"`
	UserID     uint         `gorm:"uniqueIndex:idx_shortcut_key;not null" json:"-"`
	Kind       ShortcutKind `gorm:"uniqueIndex:idx_shortcut_key;size:16;not null" json:"kind"`
	Keyword    string       `gorm:"uniqueIndex:idx_shortcut_key;size:128;not null" json:"keyword"`
	Name       string       `json:"name"`
	Items      StringList   `gorm:"type:text" json:"items,omitempty"`
	Dose       string       `json:"dose,omitempty"`
	Nutrition  NutrientMap  `gorm:"type:text" json:"nutrition"`
}
