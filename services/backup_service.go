package services

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/OrangeSorbet/annavistara/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BackupService round-trips a user's whole dataset through a single JSON
// document. Sections are independent: importing a document restores only
// the sections it carries and leaves everything else untouched.
type BackupService struct {
	db        *gorm.DB
	log       *LogService
	shortcuts *ShortcutService
}

func NewBackupService(db *gorm.DB, log *LogService, shortcuts *ShortcutService) *BackupService {
	return &BackupService{db: db, log: log, shortcuts: shortcuts}
}

// BackupDocument is the export format. Absent sections marshal as null and
// are skipped on import.
type BackupDocument struct {
	ID                  string                     `json:"id"`
	ExportedAt          time.Time                  `json:"exported_at"`
	Profile             *models.Profile            `json:"profile,omitempty"`
	DailyLog            map[string]models.DayLog   `json:"daily_log,omitempty"`
	MealShortcuts       map[string]models.Shortcut `json:"meal_shortcuts,omitempty"`
	SupplementShortcuts map[string]models.Shortcut `json:"supplement_shortcuts,omitempty"`
}

// Export gathers every section into one document.
func (s *BackupService) Export(userID uint) (*BackupDocument, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, err
	}

	logs, err := s.log.GetRange(userID, "0000-01-01", "9999-12-31")
	if err != nil {
		return nil, err
	}

	doc := &BackupDocument{
		ID:                  uuid.NewString(),
		ExportedAt:          time.Now().UTC(),
		Profile:             &user.Profile,
		DailyLog:            logs,
		MealShortcuts:       map[string]models.Shortcut{},
		SupplementShortcuts: map[string]models.Shortcut{},
	}

	meals, err := s.shortcuts.List(userID, models.ShortcutMeal)
	if err != nil {
		return nil, err
	}
	for _, sc := range meals {
		doc.MealShortcuts[sc.Keyword] = sc
	}
	supps, err := s.shortcuts.List(userID, models.ShortcutSupplement)
	if err != nil {
		return nil, err
	}
	for _, sc := range supps {
		doc.SupplementShortcuts[sc.Keyword] = sc
	}
	return doc, nil
}

// ImportResult reports which sections a restore touched.
type ImportResult struct {
	Profile   bool `json:"profile"`
	DailyLog  bool `json:"daily_log"`
	Shortcuts bool `json:"shortcuts"`
}

// Import restores the sections present in raw. Each section is decoded
// and applied on its own: a malformed section aborts only itself, and any
// valid sections alongside it still apply. A document that is not a JSON
// object at all is rejected with ErrMalformedBackup before anything is
// written; a missing section is simply skipped. When some sections fail,
// the partial result is returned together with ErrMalformedBackup naming
// the failed sections.
func (s *BackupService) Import(userID uint, raw []byte) (*ImportResult, error) {
	var doc struct {
		Profile             json.RawMessage `json:"profile"`
		DailyLog            json.RawMessage `json:"daily_log"`
		MealShortcuts       json.RawMessage `json:"meal_shortcuts"`
		SupplementShortcuts json.RawMessage `json:"supplement_shortcuts"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedBackup, err)
	}

	result := &ImportResult{}
	var malformed []string

	if sectionPresent(doc.Profile) {
		var profile models.Profile
		if err := json.Unmarshal(doc.Profile, &profile); err != nil {
			malformed = append(malformed, "profile")
		} else {
			err := s.db.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
				"name":      profile.Name,
				"age":       profile.Age,
				"height_cm": profile.HeightCm,
				"weight_kg": profile.WeightKg,
				"location":  profile.Location,
			}).Error
			if err != nil {
				return result, err
			}
			result.Profile = true
		}
	}

	if sectionPresent(doc.DailyLog) {
		var days map[string]models.DayLog
		if err := json.Unmarshal(doc.DailyLog, &days); err != nil {
			malformed = append(malformed, "daily_log")
		} else {
			if err := s.log.ReplaceAll(userID, days); err != nil {
				return result, err
			}
			result.DailyLog = true
		}
	}

	if sectionPresent(doc.MealShortcuts) {
		var shortcuts map[string]models.Shortcut
		if err := json.Unmarshal(doc.MealShortcuts, &shortcuts); err != nil {
			malformed = append(malformed, "meal_shortcuts")
		} else {
			if err := s.shortcuts.ReplaceAll(userID, models.ShortcutMeal, shortcuts); err != nil {
				return result, err
			}
			result.Shortcuts = true
		}
	}
	if sectionPresent(doc.SupplementShortcuts) {
		var shortcuts map[string]models.Shortcut
		if err := json.Unmarshal(doc.SupplementShortcuts, &shortcuts); err != nil {
			malformed = append(malformed, "supplement_shortcuts")
		} else {
			if err := s.shortcuts.ReplaceAll(userID, models.ShortcutSupplement, shortcuts); err != nil {
				return result, err
			}
			result.Shortcuts = true
		}
	}

	if len(malformed) > 0 {
		return result, fmt.Errorf("%w: section %s", ErrMalformedBackup, strings.Join(malformed, ", "))
	}
	return result, nil
}

func sectionPresent(raw json.RawMessage) bool {
	return len(raw) > 0 && string(raw) != "null"
}
