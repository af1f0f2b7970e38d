package services

import (
	"testing"

	"github.com/OrangeSorbet/annavistara/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Meal{}, &models.Supplement{}, &models.Shortcut{}))
	return db
}

func testUser(t *testing.T, db *gorm.DB, profile models.Profile) *models.User {
	t.Helper()
	user := &models.User{Email: "test@example.com", Password: "x", Profile: profile}
	require.NoError(t, db.Create(user).Error)
	return user
}

func completeProfile() models.Profile {
	return models.Profile{Name: "Test", Age: 30, HeightCm: 180, WeightKg: 80}
}
