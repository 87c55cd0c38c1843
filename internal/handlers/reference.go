package handlers

import (
	"hospital-gin/internal/apperr"
	"hospital-gin/internal/database"
	"hospital-gin/internal/models"

	"github.com/gin-gonic/gin"
)

func (h *Handler) GetDepartments(c *gin.Context) {
	departments, err := database.ReadAll[models.Department](c.Request.Context(), h.store, database.Departments)
	if err != nil {
		h.fail(c, apperr.Persistence(err))
		return
	}
	respondData(c, departments)
}

func (h *Handler) GetMedications(c *gin.Context) {
	medications, err := database.ReadAll[models.Medication](c.Request.Context(), h.store, database.Medications)
	if err != nil {
		h.fail(c, apperr.Persistence(err))
		return
	}
	respondData(c, medications)
}

func Health(c *gin.Context) {
	respond(c, gin.H{"status": "ok"})
}
