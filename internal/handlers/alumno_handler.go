package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ferdinand528/SAGA-Santa-Catalina-sub000/config"
	"github.com/ferdinand528/SAGA-Santa-Catalina-sub000/models"
)

// ListAlumnosHandler returns a paginated list of alumnos with search over
// name and document number. Pass active=true to restrict to billable ones.
func ListAlumnosHandler(c *gin.Context) {
	var alumnos []models.Alumno
	var totalRows int64

	query := config.DB.Model(&models.Alumno{})

	if search := c.Query("search"); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where(
			"LOWER(last_name) LIKE ? OR LOWER(first_name) LIKE ? OR document_number LIKE ?",
			pattern, pattern, pattern)
	}
	if c.Query("active") == "true" {
		query = query.Where("active = true")
	}

	if err := query.Count(&totalRows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count alumnos"})
		return
	}

	if err := query.Scopes(Paginate(c)).
		Order("last_name asc, first_name asc").
		Find(&alumnos).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch alumnos"})
		return
	}

	c.JSON(http.StatusOK, CreatePaginatedResponse(c, alumnos, totalRows))
}

// GetAlumnoHandler returns one alumno by ID.
func GetAlumnoHandler(c *gin.Context) {
	var alumno models.Alumno
	if err := config.DB.First(&alumno, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Alumno not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	c.JSON(http.StatusOK, alumno)
}

// CreateAlumnoHandler registers a new alumno at intake.
func CreateAlumnoHandler(c *gin.Context) {
	var alumno models.Alumno
	if err := c.ShouldBindJSON(&alumno); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if alumno.Tariff != nil && alumno.Tariff.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Tariff must not be negative"})
		return
	}

	if err := config.DB.Create(&alumno).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create alumno"})
		return
	}
	c.JSON(http.StatusCreated, alumno)
}

// UpdateAlumnoHandler applies an administrative edit to an alumno record.
func UpdateAlumnoHandler(c *gin.Context) {
	var alumno models.Alumno
	if err := config.DB.First(&alumno, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Alumno not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	var input models.Alumno
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Tariff != nil && input.Tariff.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Tariff must not be negative"})
		return
	}

	if err := config.DB.Model(&alumno).Updates(input).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update alumno"})
		return
	}
	c.JSON(http.StatusOK, alumno)
}

// DeactivateAlumnoHandler soft-deactivates an alumno. The record and its
// payment history stay in the ledger; the alumno simply stops being
// billable.
func DeactivateAlumnoHandler(c *gin.Context) {
	inactive := false
	result := config.DB.Model(&models.Alumno{}).
		Where("id = ?", c.Param("id")).
		Update("active", &inactive)

	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deactivate alumno"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Alumno not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Alumno deactivated"})
}
