package controllers

import (
	"net/http"

	"github.com/OrangeSorbet/annavistara/models"
	"github.com/OrangeSorbet/annavistara/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type RDAController struct {
	db *gorm.DB
}

func NewRDAController(db *gorm.DB) *RDAController {
	return &RDAController{db: db}
}

// GetRDA returns the personalized daily targets. ?activity=light|moderate|heavy,
// defaulting to moderate. An incomplete profile still gets the reference
// table, flagged so clients can prompt for the missing fields.
func (rc *RDAController) GetRDA(c *gin.Context) {
	activity, ok := services.ParseActivityLevel(c.Query("activity"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "activity must be light, moderate or heavy"})
		return
	}

	var user models.User
	if err := rc.db.First(&user, c.GetUint("userID")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	goals := services.ComputeRDA(&user.Profile, activity)
	c.JSON(http.StatusOK, gin.H{
		"activity":         activity,
		"profile_complete": user.Profile.Complete(),
		"goals":            goals,
	})
}
