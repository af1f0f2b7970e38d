package models

import (
	"gorm.io/gorm"
)

// Profile carries the measurements the RDA calculator personalizes from.
// Age, height and weight must all be positive before any personalization
// happens; otherwise every consumer falls back to the reference defaults.
type Profile struct {
	Name     string  `json:"name"`
	Age      int     `json:"age"`
	HeightCm float64 `json:"height"`
	WeightKg float64 `json:"weight"`
	Location string  `json:"location"`
}

// Complete reports whether the profile has everything personalization needs.
func (p *Profile) Complete() bool {
	return p != nil && p.Age > 0 && p.HeightCm > 0 && p.WeightKg > 0
}

type User struct {
	gorm.Model
	Email    string  `gorm:"uniqueIndex;not null" json:"email"`
	Password string  `gorm:"not null" json:"-"`
	Profile  Profile `gorm:"embedded" json:"profile"`
}
