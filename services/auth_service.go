package services

import (
	"errors"

	"github.com/OrangeSorbet/annavistara/models"
	"github.com/OrangeSorbet/annavistara/utils"

	"gorm.io/gorm"
)

type AuthService struct {
	db *gorm.DB
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{db: db}
}

func (a *AuthService) Register(email, password, name string) (*models.User, error) {
	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Email:    email,
		Password: hashedPassword,
	}
	user.Profile.Name = name

	if err := a.db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Authenticate checks credentials and returns a signed token. Both unknown
// email and wrong password come back as the same error, so login failures
// do not reveal which part was wrong.
func (a *AuthService) Authenticate(email, password string) (string, error) {
	var user models.User
	if err := a.db.Where("email = ?", email).First(&user).Error; err != nil {
		return "", errors.New("invalid credentials")
	}

	if !utils.CheckPasswordHash(password, user.Password) {
		return "", errors.New("invalid credentials")
	}

	return utils.GenerateJWT(user.ID, user.Email)
}
