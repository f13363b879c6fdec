package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Invoice type codes accepted on an alumno's billing profile.
const (
	InvoiceTypeA = "A"
	InvoiceTypeB = "B"
	InvoiceTypeM = "M"
	InvoiceTypeT = "T"
)

// Alumno represents a student account, the billable party against which
// payments are recorded. Alumnos are soft-deactivated, never hard-deleted,
// so the payment ledger always resolves its payer references.
type Alumno struct {
	gorm.Model
	LastName  string `json:"lastName" gorm:"not null"`
	FirstName string `json:"firstName" gorm:"not null"`
	Active    *bool  `json:"active" gorm:"default:true"`

	// Tariff is the standing monthly obligation. Nil means no tariff on
	// file and contributes zero to projected totals.
	Tariff *decimal.Decimal `json:"tariff" gorm:"type:numeric(12,2)"`

	// DiscountFormula, when present, is evaluated against the base tariff
	// (variable "Tarifa") to produce the effective monthly obligation,
	// e.g. "Tarifa * 0.5" for a half scholarship.
	DiscountFormula string `json:"discountFormula"`

	// --- BILLING PROFILE ---
	LegalName      string `json:"legalName"`
	DocumentNumber string `json:"documentNumber"`
	InvoiceType    string `json:"invoiceType" gorm:"default:'B'"`

	// --- CONTACT ---
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

// DisplayName is the "surname, given name" form used on screens and as the
// invoice recipient fallback when no legal name is on file.
func (a Alumno) DisplayName() string {
	return a.LastName + ", " + a.FirstName
}

// IsActive reports whether the alumno is billable.
func (a Alumno) IsActive() bool {
	return a.Active == nil || *a.Active
}
