package controllers

import (
	"errors"
	"io"
	"net/http"

	"github.com/OrangeSorbet/annavistara/services"

	"github.com/gin-gonic/gin"
)

type BackupController struct {
	backup *services.BackupService
}

func NewBackupController(backup *services.BackupService) *BackupController {
	return &BackupController{backup: backup}
}

func (bc *BackupController) Export(c *gin.Context) {
	doc, err := bc.backup.Export(c.GetUint("userID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Header("Content-Disposition", `attachment; filename="nutrition-backup.json"`)
	c.JSON(http.StatusOK, doc)
}

func (bc *BackupController) Import(c *gin.Context) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read body"})
		return
	}

	result, err := bc.backup.Import(c.GetUint("userID"), raw)
	if err != nil {
		if errors.Is(err, services.ErrMalformedBackup) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "applied": result})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}
