package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PaymentRecord is one collected payment, scoped to an alumno and a billing
// period. Records are append-only: once created, the monetary fields change
// only through the explicit correction operation, which stamps CorrectedAt
// and CorrectedBy. CreatedAt is server-assigned and authoritative for the
// daily till ("today") queries.
type PaymentRecord struct {
	gorm.Model
	AlumnoID uint   `json:"alumnoId" gorm:"not null;index"`
	Alumno   Alumno `json:"alumno,omitempty"`

	PeriodMonth int `json:"periodMonth" gorm:"not null;index:idx_payment_period"`
	PeriodYear  int `json:"periodYear" gorm:"not null;index:idx_payment_period"`

	Amount  decimal.Decimal `json:"amount" gorm:"type:numeric(12,2);not null"`
	Channel string          `json:"channel" gorm:"type:varchar(20);not null"`

	// RegisteredBy records who entered the payment, for accountability.
	RegisteredBy uint `json:"registeredBy"`

	CorrectedAt *time.Time `json:"correctedAt"`
	CorrectedBy *uint      `json:"correctedBy"`
}
