package models

import "gorm.io/gorm"

// Actividad is a daily activity log entry for an alumno. Entries may be
// edited only within a short window after creation; afterwards they are
// frozen for accountability.
type Actividad struct {
	gorm.Model
	AlumnoID     uint   `json:"alumnoId" gorm:"index"`
	Alumno       Alumno `json:"alumno,omitempty"`
	Description  string `json:"description" gorm:"not null"`
	RegisteredBy uint   `json:"registeredBy"`
}
