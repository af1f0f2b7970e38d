package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/OrangeSorbet/annavistara/services"

	"github.com/gin-gonic/gin"
)

type ExportController struct {
	export *services.ExportService
}

func NewExportController(export *services.ExportService) *ExportController {
	return &ExportController{export: export}
}

// GetExport streams the date range as CSV, or returns the table as JSON
// with ?format=json. Defaults to the current month when no range is given.
func (ec *ExportController) GetExport(c *gin.Context) {
	from := c.Query("from")
	to := c.Query("to")
	if from == "" || to == "" {
		now := time.Now()
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		from = first.Format("2006-01-02")
		to = first.AddDate(0, 1, -1).Format("2006-01-02")
	}
	if _, err := time.Parse("2006-01-02", from); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from must be YYYY-MM-DD"})
		return
	}
	if _, err := time.Parse("2006-01-02", to); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "to must be YYYY-MM-DD"})
		return
	}
	activity, ok := services.ParseActivityLevel(c.Query("activity"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "activity must be light, moderate or heavy"})
		return
	}

	table, err := ec.export.Export(c.GetUint("userID"), from, to, activity)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if c.Query("format") == "json" {
		c.JSON(http.StatusOK, table)
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="nutrition-%s-to-%s.csv"`, from, to))
	if err := ec.export.WriteCSV(c.Writer, table); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
