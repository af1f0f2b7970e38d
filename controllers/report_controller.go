package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/OrangeSorbet/annavistara/services"

	"github.com/gin-gonic/gin"
)

type ReportController struct {
	report *services.ReportService
}

func NewReportController(report *services.ReportService) *ReportController {
	return &ReportController{report: report}
}

func (rc *ReportController) GetDaySummary(c *gin.Context) {
	activity, ok := services.ParseActivityLevel(c.Query("activity"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "activity must be light, moderate or heavy"})
		return
	}

	summary, err := rc.report.DaySummary(c.GetUint("userID"), c.Param("date"), activity)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, summary)
}

// GetCalendar returns one status per day of /calendar/:year/:month, so the
// month view can color its cells in a single request.
func (rc *ReportController) GetCalendar(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year"})
		return
	}
	monthNo, err := strconv.Atoi(c.Param("month"))
	if err != nil || monthNo < 1 || monthNo > 12 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid month"})
		return
	}
	activity, ok := services.ParseActivityLevel(c.Query("activity"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "activity must be light, moderate or heavy"})
		return
	}

	days, err := rc.report.CalendarMonth(c.GetUint("userID"), year, time.Month(monthNo), activity)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"year": year, "month": monthNo, "days": days})
}

func (rc *ReportController) GetDayStatus(c *gin.Context) {
	activity, ok := services.ParseActivityLevel(c.Query("activity"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "activity must be light, moderate or heavy"})
		return
	}

	status, err := rc.report.DayStatus(c.GetUint("userID"), c.Param("date"), activity)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": c.Param("date"), "status": status})
}
