package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/OrangeSorbet/annavistara/models"
	"github.com/OrangeSorbet/annavistara/services"
	"github.com/OrangeSorbet/annavistara/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// LogController handles the daily log. Meal and supplement entry follow the
// same ladder: a matching shortcut wins, then AI analysis, and if the
// analysis fails the raw input is still logged as a manual entry so nothing
// the user typed is ever lost.
type LogController struct {
	db        *gorm.DB
	log       *services.LogService
	gemini    *services.GeminiService
	shortcuts *services.ShortcutService
	report    *services.ReportService
	hub       *services.RealtimeHub
}

func NewLogController(db *gorm.DB, log *services.LogService, gemini *services.GeminiService, shortcuts *services.ShortcutService, report *services.ReportService, hub *services.RealtimeHub) *LogController {
	return &LogController{db: db, log: log, gemini: gemini, shortcuts: shortcuts, report: report, hub: hub}
}

// profile loads the user's profile so analysis prompts can size portions
// for the eater. A missing row just yields nil.
func (lc *LogController) profile(userID uint) *models.Profile {
	var user models.User
	if err := lc.db.First(&user, userID).Error; err != nil {
		return nil
	}
	return &user.Profile
}

type MealInput struct {
	Text      string             `json:"text"`
	Photo     string             `json:"photo"`
	Name      string             `json:"name"`
	Items     models.StringList  `json:"items"`
	Nutrition models.NutrientMap `json:"nutrition"`
}

func (lc *LogController) AddMeal(c *gin.Context) {
	userID := c.GetUint("userID")
	date := c.Param("date")

	var input MealInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	meal := models.Meal{Name: input.Name, Items: input.Items, Nutrition: input.Nutrition}
	source := "manual"

	switch {
	case input.Photo != "":
		url, imageData, contentType, err := utils.UploadMealPhoto(c.Request.Context(), input.Photo)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		meal.PhotoURL = url
		analyzed, err := lc.gemini.AnalyzeMealImage(c.Request.Context(), lc.profile(userID), imageData, contentType)
		if err != nil {
			if meal.Name == "" {
				meal.Name = "Photo meal"
			}
			source = "photo_unanalyzed"
		} else {
			meal.Name = analyzed.Name
			meal.Items = analyzed.Items
			meal.Nutrition = analyzed.Nutrition
			source = "photo"
		}

	case input.Text != "":
		if sc, err := lc.shortcuts.Resolve(userID, models.ShortcutMeal, input.Text); err == nil {
			meal.Name = sc.Name
			meal.Items = sc.Items
			meal.Nutrition = sc.Nutrition
			source = "shortcut"
		} else if analyzed, err := lc.gemini.AnalyzeMealText(c.Request.Context(), lc.profile(userID), input.Text); err == nil {
			meal.Name = analyzed.Name
			meal.Items = analyzed.Items
			meal.Nutrition = analyzed.Nutrition
			source = "analyzed"
		} else {
			meal.Name = input.Text
		}

	case input.Name == "":
		c.JSON(http.StatusBadRequest, gin.H{"error": "one of text, photo or name is required"})
		return
	}

	created, err := lc.log.AddMeal(userID, date, meal)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	lc.notify(userID, date)
	c.JSON(http.StatusCreated, gin.H{"meal": created, "source": source})
}

type SupplementInput struct {
	Text      string             `json:"text"`
	Name      string             `json:"name"`
	Dose      string             `json:"dose"`
	Nutrition models.NutrientMap `json:"nutrition"`
}

func (lc *LogController) AddSupplement(c *gin.Context) {
	userID := c.GetUint("userID")
	date := c.Param("date")

	var input SupplementInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	supp := models.Supplement{Name: input.Name, Dose: input.Dose, Nutrition: input.Nutrition}
	source := "manual"

	if input.Text != "" {
		if sc, err := lc.shortcuts.Resolve(userID, models.ShortcutSupplement, input.Text); err == nil {
			supp.Name = sc.Name
			supp.Dose = sc.Dose
			supp.Nutrition = sc.Nutrition
			source = "shortcut"
		} else if analyzed, err := lc.gemini.AnalyzeSupplement(c.Request.Context(), lc.profile(userID), input.Text); err == nil {
			supp.Name = analyzed.Name
			supp.Dose = analyzed.Dose
			supp.Nutrition = analyzed.Nutrition
			source = "analyzed"
		} else {
			supp.Name = input.Text
		}
	} else if input.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "one of text or name is required"})
		return
	}

	created, err := lc.log.AddSupplement(userID, date, supp)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	lc.notify(userID, date)
	c.JSON(http.StatusCreated, gin.H{"supplement": created, "source": source})
}

func (lc *LogController) GetDay(c *gin.Context) {
	day, err := lc.log.GetDay(c.GetUint("userID"), c.Param("date"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, day)
}

func (lc *LogController) UpdateMeal(c *gin.Context) {
	userID := c.GetUint("userID")
	date := c.Param("date")
	itemID, err := itemIDParam(c)
	if err != nil {
		return
	}

	var upd models.Meal
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	meal, err := lc.log.UpdateMeal(userID, date, itemID, upd)
	if err != nil {
		if errors.Is(err, services.ErrItemNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "meal not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	lc.notify(userID, date)
	c.JSON(http.StatusOK, meal)
}

func (lc *LogController) UpdateSupplement(c *gin.Context) {
	userID := c.GetUint("userID")
	date := c.Param("date")
	itemID, err := itemIDParam(c)
	if err != nil {
		return
	}

	var upd models.Supplement
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	supp, err := lc.log.UpdateSupplement(userID, date, itemID, upd)
	if err != nil {
		if errors.Is(err, services.ErrItemNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "supplement not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	lc.notify(userID, date)
	c.JSON(http.StatusOK, supp)
}

func (lc *LogController) DeleteMeal(c *gin.Context) {
	userID := c.GetUint("userID")
	date := c.Param("date")
	itemID, err := itemIDParam(c)
	if err != nil {
		return
	}

	if err := lc.log.DeleteMeal(userID, date, itemID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	lc.notify(userID, date)
	c.JSON(http.StatusOK, gin.H{"deleted": itemID})
}

func (lc *LogController) DeleteSupplement(c *gin.Context) {
	userID := c.GetUint("userID")
	date := c.Param("date")
	itemID, err := itemIDParam(c)
	if err != nil {
		return
	}

	if err := lc.log.DeleteSupplement(userID, date, itemID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	lc.notify(userID, date)
	c.JSON(http.StatusOK, gin.H{"deleted": itemID})
}

// notify pushes the recomputed day summary over any open sockets. Summary
// errors only downgrade the frame to a bare date notification.
func (lc *LogController) notify(userID uint, date string) {
	summary, err := lc.report.DaySummary(userID, date, services.ActivityModerate)
	if err != nil {
		lc.hub.LogUpdated(userID, date, nil)
		return
	}
	lc.hub.LogUpdated(userID, date, summary)
}

func itemIDParam(c *gin.Context) (int64, error) {
	itemID, err := strconv.ParseInt(strings.TrimSpace(c.Param("itemID")), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return 0, err
	}
	return itemID, nil
}
