package controllers

import (
	"net/http"

	"github.com/OrangeSorbet/annavistara/models"
	"github.com/OrangeSorbet/annavistara/services"
	"github.com/OrangeSorbet/annavistara/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type UserController struct {
	db *gorm.DB
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{db: db}
}

func (uc *UserController) GetProfile(c *gin.Context) {
	var user models.User
	if err := uc.db.First(&user, c.GetUint("userID")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"email":    user.Email,
		"profile":  user.Profile,
		"complete": user.Profile.Complete(),
	})
}

func (uc *UserController) UpdateProfile(c *gin.Context) {
	var input models.Profile
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := uc.db.Model(&models.User{}).Where("id = ?", c.GetUint("userID")).Updates(map[string]interface{}{
		"name":      input.Name,
		"age":       input.Age,
		"height_cm": input.HeightCm,
		"weight_kg": input.WeightKg,
		"location":  input.Location,
	}).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": input, "complete": input.Complete()})
}

func (uc *UserController) GetBMI(c *gin.Context) {
	var user models.User
	if err := uc.db.First(&user, c.GetUint("userID")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	if !user.Profile.Complete() {
		c.JSON(http.StatusBadRequest, gin.H{"error": services.ErrProfileIncomplete.Error()})
		return
	}

	bmi, err := utils.CalculateBMI(user.Profile.HeightCm, user.Profile.WeightKg)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"bmi": bmi, "category": utils.BMICategory(bmi)})
}
