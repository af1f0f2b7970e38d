package services

import (
	"errors"
	"strings"

	"github.com/OrangeSorbet/annavistara/models"

	"gorm.io/gorm"
)

// ShortcutService owns the keyword → template tables, independent of the
// daily log. Meal and supplement tables are disjoint by kind.
type ShortcutService struct {
	db *gorm.DB
}

func NewShortcutService(db *gorm.DB) *ShortcutService {
	return &ShortcutService{db: db}
}

// shortcutKey is the only normalization applied to keywords: trim and
// lower-case. Lookup is exact match after that; no fuzzy matching.
func shortcutKey(keyword string) string {
	return strings.ToLower(strings.TrimSpace(keyword))
}

// Resolve returns a fresh copy of the template for a keyword, or
// ErrShortcutNotFound on a miss. The caller assigns a new item id; the
// template never carries one.
func (s *ShortcutService) Resolve(userID uint, kind models.ShortcutKind, keyword string) (models.Shortcut, error) {
	key := shortcutKey(keyword)
	if key == "" {
		return models.Shortcut{}, ErrShortcutNotFound
	}
	var sc models.Shortcut
	err := s.db.
		Where("user_id = ? AND kind = ? AND keyword = ?", userID, kind, key).
		First(&sc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Shortcut{}, ErrShortcutNotFound
		}
		return models.Shortcut{}, err
	}
	return copyShortcut(sc), nil
}

// copyShortcut deep-copies the template so callers can't mutate the stored
// nutrition map through the returned value.
func copyShortcut(sc models.Shortcut) models.Shortcut {
	out := sc
	out.Items = append(models.StringList{}, sc.Items...)
	out.Nutrition = make(models.NutrientMap, len(sc.Nutrition))
	for k, v := range sc.Nutrition {
		out.Nutrition[k] = v
	}
	return out
}

// Save upserts a shortcut under its normalized keyword.
func (s *ShortcutService) Save(userID uint, kind models.ShortcutKind, sc models.Shortcut) (models.Shortcut, error) {
	key := shortcutKey(sc.Keyword)
	if key == "" {
		return models.Shortcut{}, errors.New("keyword required")
	}
	if sc.Nutrition == nil {
		sc.Nutrition = models.NutrientMap{}
	}

	var existing models.Shortcut
	err := s.db.
		Where("user_id = ? AND kind = ? AND keyword = ?", userID, kind, key).
		First(&existing).Error
	switch {
	case err == nil:
		existing.Name = sc.Name
		existing.Items = sc.Items
		existing.Dose = sc.Dose
		existing.Nutrition = sc.Nutrition
		if err := s.db.Save(&existing).Error; err != nil {
			return models.Shortcut{}, err
		}
		return existing, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		sc.UserID = userID
		sc.Kind = kind
		sc.Keyword = key
		if err := s.db.Create(&sc).Error; err != nil {
			return models.Shortcut{}, err
		}
		return sc, nil
	default:
		return models.Shortcut{}, err
	}
}

func (s *ShortcutService) List(userID uint, kind models.ShortcutKind) ([]models.Shortcut, error) {
	var out []models.Shortcut
	err := s.db.
		Where("user_id = ? AND kind = ?", userID, kind).
		Order("keyword ASC").
		Find(&out).Error
	return out, err
}

func (s *ShortcutService) Delete(userID uint, kind models.ShortcutKind, keyword string) error {
	return s.db.
		Where("user_id = ? AND kind = ? AND keyword = ?", userID, kind, shortcutKey(keyword)).
		Delete(&models.Shortcut{}).Error
}

// ReplaceAll swaps one kind's table for the given keyword-keyed templates.
// Backup restore path; transactional.
func (s *ShortcutService) ReplaceAll(userID uint, kind models.ShortcutKind, table map[string]models.Shortcut) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("user_id = ? AND kind = ?", userID, kind).Delete(&models.Shortcut{}).Error; err != nil {
			return err
		}
		for keyword, sc := range table {
			sc.ID = 0
			sc.UserID = userID
			sc.Kind = kind
			sc.Keyword = shortcutKey(keyword)
			if sc.Keyword == "" {
				continue
			}
			if sc.Nutrition == nil {
				sc.Nutrition = models.NutrientMap{}
			}
			if err := tx.Create(&sc).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
