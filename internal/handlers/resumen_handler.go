package handlers

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/ferdinand528/SAGA-Santa-Catalina-sub000/internal/ledger"
)

// ResumenHandler serves the period reconciliation views: the collection
// summary and the per-alumno debtor list.
type ResumenHandler struct {
	ledger PaymentLedger
}

func NewResumenHandler(l PaymentLedger) *ResumenHandler {
	return &ResumenHandler{ledger: l}
}

// ResumenResponse is one period's reconciliation summary.
type ResumenResponse struct {
	Periodo       string                             `json:"periodo"`
	Projected     decimal.Decimal                    `json:"projected"`
	Collected     decimal.Decimal                    `json:"collected"`
	Outstanding   decimal.Decimal                    `json:"outstanding"`
	CompletionPct decimal.Decimal                    `json:"completionPct"`
	ByChannel     map[ledger.Channel]decimal.Decimal `json:"byChannel"`
	ByPayer       map[uint]decimal.Decimal           `json:"byPayer"`
}

// Resumen recomputes the period aggregate fresh from stored records; there
// is no cached figure to invalidate.
func (h *ResumenHandler) Resumen(c *gin.Context) {
	period, err := periodFromQuery(c)
	if err != nil {
		respondLedgerError(c, err)
		return
	}

	records, err := h.ledger.ListPaymentsForPeriod(c.Request.Context(), period)
	if err != nil {
		respondLedgerError(c, err)
		return
	}
	alumnos, err := h.ledger.ActiveAlumnos(c.Request.Context())
	if err != nil {
		respondLedgerError(c, err)
		return
	}

	projected, err := ledger.ProjectedTotal(alumnos)
	if err != nil {
		respondLedgerError(c, err)
		return
	}
	collected := ledger.CollectedTotal(records)

	c.JSON(http.StatusOK, ResumenResponse{
		Periodo:       period.String(),
		Projected:     projected,
		Collected:     collected,
		Outstanding:   ledger.OutstandingBalance(projected, collected),
		CompletionPct: ledger.CompletionPercentage(projected, collected),
		ByChannel:     ledger.ByChannel(records),
		ByPayer:       ledger.ByPayer(records),
	})
}

// DeudorResponse is one alumno's outstanding balance for the period.
type DeudorResponse struct {
	AlumnoID   uint            `json:"alumnoId"`
	Alumno     string          `json:"alumno"`
	Tariff     decimal.Decimal `json:"tariff"`
	Paid       decimal.Decimal `json:"paid"`
	DebtAmount decimal.Decimal `json:"debtAmount"`
}

// Deudores lists the alumnos whose period payments fall short of their
// effective tariff, largest debt first.
func (h *ResumenHandler) Deudores(c *gin.Context) {
	period, err := periodFromQuery(c)
	if err != nil {
		respondLedgerError(c, err)
		return
	}

	records, err := h.ledger.ListPaymentsForPeriod(c.Request.Context(), period)
	if err != nil {
		respondLedgerError(c, err)
		return
	}
	alumnos, err := h.ledger.ActiveAlumnos(c.Request.Context())
	if err != nil {
		respondLedgerError(c, err)
		return
	}

	paidByAlumno := ledger.ByPayer(records)
	debtors := make([]DeudorResponse, 0)
	for _, a := range alumnos {
		tariff, err := ledger.EffectiveTariff(a)
		if err != nil {
			respondLedgerError(c, err)
			return
		}
		paid := paidByAlumno[a.ID]
		debt := ledger.OutstandingBalance(tariff, paid)
		if debt.IsZero() {
			continue
		}
		debtors = append(debtors, DeudorResponse{
			AlumnoID:   a.ID,
			Alumno:     a.DisplayName(),
			Tariff:     tariff,
			Paid:       paid,
			DebtAmount: debt,
		})
	}

	sort.Slice(debtors, func(i, j int) bool {
		return debtors[i].DebtAmount.GreaterThan(debtors[j].DebtAmount)
	})

	c.JSON(http.StatusOK, gin.H{"data": debtors, "periodo": period.String()})
}
