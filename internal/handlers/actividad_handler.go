package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ferdinand528/SAGA-Santa-Catalina-sub000/config"
	"github.com/ferdinand528/SAGA-Santa-Catalina-sub000/models"
)

// ActividadEditWindow is how long after creation an activity entry stays
// editable. Past the window entries are frozen.
const ActividadEditWindow = 10 * time.Minute

type actividadInput struct {
	AlumnoID    uint   `json:"alumnoId"`
	Description string `json:"description" binding:"required"`
}

// CreateActividadHandler registers a daily activity log entry.
func CreateActividadHandler(c *gin.Context) {
	var input actividadInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actividad := models.Actividad{
		AlumnoID:     input.AlumnoID,
		Description:  input.Description,
		RegisteredBy: c.GetUint("user_id"),
	}
	if err := config.DB.Create(&actividad).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create activity entry"})
		return
	}
	c.JSON(http.StatusCreated, actividad)
}

// ListActividadesHandler returns paginated activity entries, newest first,
// optionally filtered by alumno.
func ListActividadesHandler(c *gin.Context) {
	var actividades []models.Actividad
	var totalRows int64

	query := config.DB.Model(&models.Actividad{})
	if alumnoID := c.Query("alumno_id"); alumnoID != "" {
		query = query.Where("alumno_id = ?", alumnoID)
	}

	if err := query.Count(&totalRows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count activity entries"})
		return
	}

	if err := query.Scopes(Paginate(c)).
		Order("created_at desc").
		Find(&actividades).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch activity entries"})
		return
	}

	c.JSON(http.StatusOK, CreatePaginatedResponse(c, actividades, totalRows))
}

// UpdateActividadHandler edits an entry's description, rejected once the
// edit window has elapsed.
func UpdateActividadHandler(c *gin.Context) {
	var actividad models.Actividad
	if err := config.DB.First(&actividad, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Activity entry not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if time.Since(actividad.CreatedAt) > ActividadEditWindow {
		c.JSON(http.StatusForbidden, gin.H{"error": "Activity entries can only be edited within 10 minutes of creation"})
		return
	}

	var input actividadInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actividad.Description = input.Description
	if err := config.DB.Save(&actividad).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update activity entry"})
		return
	}
	c.JSON(http.StatusOK, actividad)
}
