package controllers

import (
	"net/http"

	"github.com/OrangeSorbet/annavistara/services"
	"github.com/OrangeSorbet/annavistara/utils"

	"github.com/gin-gonic/gin"
)

type AdvisorController struct {
	advisor *services.AdvisorService
}

func NewAdvisorController(advisor *services.AdvisorService) *AdvisorController {
	return &AdvisorController{advisor: advisor}
}

func (ac *AdvisorController) SuggestSupplement(c *gin.Context) {
	var input struct {
		Query string `json:"query" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	suggestions, err := ac.advisor.SuggestSupplement(c.Request.Context(), c.GetUint("userID"), input.Query)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "advice unavailable: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}

func (ac *AdvisorController) SuggestMeal(c *gin.Context) {
	var input struct {
		MenuPhoto string `json:"menu_photo"`
		Diet      string `json:"diet"`
		BudgetINR int    `json:"budget_inr"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var menuImage []byte
	var menuMime string
	if input.MenuPhoto != "" {
		var err error
		menuImage, menuMime, err = utils.DecodeDataURL(input.MenuPhoto)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	suggestions, err := ac.advisor.SuggestMeal(c.Request.Context(), c.GetUint("userID"), menuImage, menuMime, input.Diet, input.BudgetINR)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "advice unavailable: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}
