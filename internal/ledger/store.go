package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/ferdinand528/SAGA-Santa-Catalina-sub000/models"
)

// Store is the ledger's persistence layer over the relational backend. The
// only mutation paths for money are RecordPayment (append) and
// CorrectPayment (explicit in-place fix); nothing here maintains cached
// aggregates — readers always recompute from stored records.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// RecordPaymentInput carries the boundary-validated fields for one payment.
type RecordPaymentInput struct {
	AlumnoID     uint
	Period       Period
	Amount       decimal.Decimal
	Channel      Channel
	RegisteredBy uint
}

// RecordPayment validates the input, resolves the alumno and appends one
// immutable record. Multiple payments for the same (alumno, period) are
// allowed and accumulate.
func (s *Store) RecordPayment(ctx context.Context, in RecordPaymentInput) (*models.PaymentRecord, error) {
	if !in.Amount.IsPositive() {
		return nil, &ValidationError{Reason: "amount must be greater than zero"}
	}
	if _, err := ParseChannel(string(in.Channel)); err != nil {
		return nil, err
	}

	var alumno models.Alumno
	err := s.db.WithContext(ctx).
		Where("id = ? AND active = true", in.AlumnoID).
		First(&alumno).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "alumno", ID: in.AlumnoID}
		}
		return nil, err
	}

	record := models.PaymentRecord{
		AlumnoID:     alumno.ID,
		PeriodMonth:  int(in.Period.Month),
		PeriodYear:   in.Period.Year,
		Amount:       in.Amount,
		Channel:      string(in.Channel),
		RegisteredBy: in.RegisteredBy,
	}
	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// CorrectPayment is the only operation allowed to change a record's monetary
// fields after creation. It overwrites amount and channel in place and
// stamps who corrected it and when.
func (s *Store) CorrectPayment(ctx context.Context, id uint, amount decimal.Decimal, channel Channel, actor uint) (*models.PaymentRecord, error) {
	if !amount.IsPositive() {
		return nil, &ValidationError{Reason: "amount must be greater than zero"}
	}
	if _, err := ParseChannel(string(channel)); err != nil {
		return nil, err
	}

	var record models.PaymentRecord
	if err := s.db.WithContext(ctx).First(&record, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "payment", ID: id}
		}
		return nil, err
	}

	now := time.Now()
	record.Amount = amount
	record.Channel = string(channel)
	record.CorrectedAt = &now
	record.CorrectedBy = &actor
	if err := s.db.WithContext(ctx).Save(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// GetPayment fetches one record with its alumno preloaded.
func (s *Store) GetPayment(ctx context.Context, id uint) (*models.PaymentRecord, error) {
	var record models.PaymentRecord
	err := s.db.WithContext(ctx).Preload("Alumno").First(&record, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "payment", ID: id}
		}
		return nil, err
	}
	return &record, nil
}

// ListPayments returns every record for one alumno in one period. An empty
// result is a valid empty slice, not an error.
func (s *Store) ListPayments(ctx context.Context, alumnoID uint, p Period) ([]models.PaymentRecord, error) {
	records := make([]models.PaymentRecord, 0)
	err := s.db.WithContext(ctx).
		Where("alumno_id = ? AND period_month = ? AND period_year = ?", alumnoID, int(p.Month), p.Year).
		Find(&records).Error
	return records, err
}

// ListPaymentsForPeriod returns every record in the period across all
// alumnos, for the period aggregator.
func (s *Store) ListPaymentsForPeriod(ctx context.Context, p Period) ([]models.PaymentRecord, error) {
	records := make([]models.PaymentRecord, 0)
	err := s.db.WithContext(ctx).
		Where("period_month = ? AND period_year = ?", int(p.Month), p.Year).
		Find(&records).Error
	return records, err
}

// ListPaymentsCreatedOn returns the records whose server-assigned creation
// timestamp falls on the given date, midnight to midnight in the date's
// location. Used by the daily till close-out.
func (s *Store) ListPaymentsCreatedOn(ctx context.Context, date time.Time) ([]models.PaymentRecord, error) {
	start, end := DayBounds(date)
	records := make([]models.PaymentRecord, 0)
	err := s.db.WithContext(ctx).
		Where("created_at >= ? AND created_at < ?", start, end).
		Find(&records).Error
	return records, err
}

// ActiveAlumnos returns the billable payer set, ordered for stable export
// output.
func (s *Store) ActiveAlumnos(ctx context.Context) ([]models.Alumno, error) {
	alumnos := make([]models.Alumno, 0)
	err := s.db.WithContext(ctx).
		Where("active = true").
		Order("last_name asc, first_name asc").
		Find(&alumnos).Error
	return alumnos, err
}
