package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/divan/num2words"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/ferdinand528/SAGA-Santa-Catalina-sub000/internal/ledger"
	"github.com/ferdinand528/SAGA-Santa-Catalina-sub000/models"
)

// PaymentLedger is the ledger surface the HTTP layer depends on. Handlers
// accept the interface so tests can substitute an in-memory implementation.
type PaymentLedger interface {
	RecordPayment(ctx context.Context, in ledger.RecordPaymentInput) (*models.PaymentRecord, error)
	CorrectPayment(ctx context.Context, id uint, amount decimal.Decimal, channel ledger.Channel, actor uint) (*models.PaymentRecord, error)
	GetPayment(ctx context.Context, id uint) (*models.PaymentRecord, error)
	ListPayments(ctx context.Context, alumnoID uint, p ledger.Period) ([]models.PaymentRecord, error)
	ListPaymentsForPeriod(ctx context.Context, p ledger.Period) ([]models.PaymentRecord, error)
	ActiveAlumnos(ctx context.Context) ([]models.Alumno, error)
}

// PagoHandler serves the payment recording and query endpoints.
type PagoHandler struct {
	ledger PaymentLedger
}

func NewPagoHandler(l PaymentLedger) *PagoHandler {
	return &PagoHandler{ledger: l}
}

// respondLedgerError maps the ledger error taxonomy onto HTTP statuses.
// Anything outside the taxonomy is a store failure and surfaces as 500 for
// the user to re-attempt manually.
func respondLedgerError(c *gin.Context, err error) {
	switch {
	case ledger.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case ledger.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "operation failed, please retry"})
	}
}

// periodFromQuery reads month/year query parameters, defaulting to the
// current period when both are absent.
func periodFromQuery(c *gin.Context) (ledger.Period, error) {
	monthStr := c.Query("month")
	yearStr := c.Query("year")
	if monthStr == "" && yearStr == "" {
		return ledger.CurrentPeriod(time.Now()), nil
	}
	month, err := strconv.Atoi(monthStr)
	if err != nil {
		return ledger.Period{}, &ledger.ValidationError{Reason: "invalid month"}
	}
	year, err := strconv.Atoi(yearStr)
	if err != nil {
		return ledger.Period{}, &ledger.ValidationError{Reason: "invalid year"}
	}
	return ledger.NewPeriod(month, year)
}

type createPagoInput struct {
	AlumnoID uint            `json:"alumnoId" binding:"required"`
	Month    int             `json:"month" binding:"required"`
	Year     int             `json:"year" binding:"required"`
	Amount   decimal.Decimal `json:"amount"`
	Channel  string          `json:"channel" binding:"required"`
}

// Create registers one payment against an alumno's period.
func (h *PagoHandler) Create(c *gin.Context) {
	var input createPagoInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	period, err := ledger.NewPeriod(input.Month, input.Year)
	if err != nil {
		respondLedgerError(c, err)
		return
	}

	record, err := h.ledger.RecordPayment(c.Request.Context(), ledger.RecordPaymentInput{
		AlumnoID:     input.AlumnoID,
		Period:       period,
		Amount:       input.Amount,
		Channel:      ledger.Channel(input.Channel),
		RegisteredBy: c.GetUint("user_id"),
	})
	if err != nil {
		respondLedgerError(c, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

// List returns the payments of a period, optionally narrowed to one alumno.
func (h *PagoHandler) List(c *gin.Context) {
	period, err := periodFromQuery(c)
	if err != nil {
		respondLedgerError(c, err)
		return
	}

	var records []models.PaymentRecord
	if alumnoStr := c.Query("alumno_id"); alumnoStr != "" {
		alumnoID, convErr := strconv.Atoi(alumnoStr)
		if convErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid alumno_id"})
			return
		}
		records, err = h.ledger.ListPayments(c.Request.Context(), uint(alumnoID), period)
	} else {
		records, err = h.ledger.ListPaymentsForPeriod(c.Request.Context(), period)
	}
	if err != nil {
		respondLedgerError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": records})
}

type correctPagoInput struct {
	Amount  decimal.Decimal `json:"amount"`
	Channel string          `json:"channel" binding:"required"`
}

// Correct is the explicit fix path for a data-entry mistake. It overwrites
// the record's monetary fields in place and stamps the correcting user.
func (h *PagoHandler) Correct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payment ID"})
		return
	}

	var input correctPagoInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record, err := h.ledger.CorrectPayment(c.Request.Context(), uint(id),
		input.Amount, ledger.Channel(input.Channel), c.GetUint("user_id"))
	if err != nil {
		respondLedgerError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

// ReciboResponse is the printable receipt payload for one payment.
type ReciboResponse struct {
	Numero        uint   `json:"numero"`
	Fecha         string `json:"fecha"`
	Alumno        string `json:"alumno"`
	Periodo       string `json:"periodo"`
	Canal         string `json:"canal"`
	Monto         string `json:"monto"`
	MontoEnLetras string `json:"montoEnLetras"`
}

// Recibo builds the receipt for one recorded payment, spelling out the
// amount in words for the printed form.
func (h *PagoHandler) Recibo(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payment ID"})
		return
	}

	record, err := h.ledger.GetPayment(c.Request.Context(), uint(id))
	if err != nil {
		respondLedgerError(c, err)
		return
	}

	period := ledger.Period{Month: time.Month(record.PeriodMonth), Year: record.PeriodYear}
	c.JSON(http.StatusOK, ReciboResponse{
		Numero:        record.ID,
		Fecha:         record.CreatedAt.Format("02.01.2006"),
		Alumno:        record.Alumno.DisplayName(),
		Periodo:       period.String(),
		Canal:         record.Channel,
		Monto:         record.Amount.StringFixed(2),
		MontoEnLetras: num2words.Convert(int(record.Amount.IntPart())),
	})
}
