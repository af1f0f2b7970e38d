package controllers

import (
	"errors"
	"net/http"

	"github.com/OrangeSorbet/annavistara/models"
	"github.com/OrangeSorbet/annavistara/services"

	"github.com/gin-gonic/gin"
)

type ShortcutController struct {
	shortcuts *services.ShortcutService
}

func NewShortcutController(shortcuts *services.ShortcutService) *ShortcutController {
	return &ShortcutController{shortcuts: shortcuts}
}

func shortcutKind(c *gin.Context) (models.ShortcutKind, bool) {
	switch c.Param("kind") {
	case "meals":
		return models.ShortcutMeal, true
	case "supplements":
		return models.ShortcutSupplement, true
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "kind must be meals or supplements"})
	return "", false
}

func (sc *ShortcutController) List(c *gin.Context) {
	kind, ok := shortcutKind(c)
	if !ok {
		return
	}
	list, err := sc.shortcuts.List(c.GetUint("userID"), kind)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"shortcuts": list})
}

type ShortcutInput struct {
	Keyword   string             `json:"keyword" binding:"required"`
	Name      string             `json:"name" binding:"required"`
	Items     models.StringList  `json:"items"`
	Dose      string             `json:"dose"`
	Nutrition models.NutrientMap `json:"nutrition"`
}

func (sc *ShortcutController) Save(c *gin.Context) {
	kind, ok := shortcutKind(c)
	if !ok {
		return
	}

	var input ShortcutInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	saved, err := sc.shortcuts.Save(c.GetUint("userID"), kind, models.Shortcut{
		Keyword:   input.Keyword,
		Name:      input.Name,
		Items:     input.Items,
		Dose:      input.Dose,
		Nutrition: input.Nutrition,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, saved)
}

func (sc *ShortcutController) Delete(c *gin.Context) {
	kind, ok := shortcutKind(c)
	if !ok {
		return
	}
	if err := sc.shortcuts.Delete(c.GetUint("userID"), kind, c.Param("keyword")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": c.Param("keyword")})
}

// Resolve previews what a keyword would expand to without logging it.
func (sc *ShortcutController) Resolve(c *gin.Context) {
	kind, ok := shortcutKind(c)
	if !ok {
		return
	}
	shortcut, err := sc.shortcuts.Resolve(c.GetUint("userID"), kind, c.Param("keyword"))
	if err != nil {
		if errors.Is(err, services.ErrShortcutNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "shortcut not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, shortcut)
}
