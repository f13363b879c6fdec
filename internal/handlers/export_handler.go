package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ferdinand528/SAGA-Santa-Catalina-sub000/internal/ledger"
)

// ExportHandler streams the invoice-ready workbook for the external billing
// pipeline.
type ExportHandler struct {
	ledger PaymentLedger
	cfg    ledger.ExportConfig
}

func NewExportHandler(l PaymentLedger, cfg ledger.ExportConfig) *ExportHandler {
	return &ExportHandler{ledger: l, cfg: cfg}
}

// Facturacion builds the export rows for the period's active alumnos and
// writes the workbook straight to the response. Rows are built before any
// byte is written, so a failed attempt never produces a partial file.
func (h *ExportHandler) Facturacion(c *gin.Context) {
	period, err := periodFromQuery(c)
	if err != nil {
		respondLedgerError(c, err)
		return
	}

	alumnos, err := h.ledger.ActiveAlumnos(c.Request.Context())
	if err != nil {
		respondLedgerError(c, err)
		return
	}

	rows, err := ledger.BuildExportRows(alumnos, period, h.cfg, time.Now())
	if err != nil {
		respondLedgerError(c, err)
		return
	}

	fileName := ledger.ExportFileName(h.cfg, period)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename="+fileName)
	if err := ledger.WriteWorkbook(c.Writer, rows); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to write export file"})
	}
}
