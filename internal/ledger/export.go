package ledger

import (
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/ferdinand528/SAGA-Santa-Catalina-sub000/models"
)

// Fixed derivation codes for the third-party billing hand-off.
const (
	comprobanteFacturaA = "001"
	comprobanteFacturaB = "006"
	documentTypeDNI     = "96"
	conceptServices     = "2"
)

// ExportConfig holds the batch-level constants of an export run.
type ExportConfig struct {
	// SystemName prefixes the artifact filename.
	SystemName string
	// PointOfSale is the fixed 5-digit code stamped on every row of the
	// batch; it is not derived from the payer.
	PointOfSale string
}

// ExportRow is one invoice-ready record destined for the external billing
// tool. It is derived on demand and never persisted.
type ExportRow struct {
	Date            string
	ComprobanteType string
	PointOfSale     string
	DocumentType    string
	DocumentNumber  string
	RecipientName   string
	TotalAmount     decimal.Decimal
	Concept         string
	Detail          string
}

// exportHeaders is the wire contract with the downstream billing import:
// the column names and their order must stay stable across versions.
var exportHeaders = []string{
	"Fecha",
	"Tipo Comprobante",
	"Punto de Venta",
	"Tipo Documento",
	"Nro Documento",
	"Razon Social",
	"Importe Total",
	"Concepto",
	"Detalle",
}

// BuildExportRows derives one row per alumno for the period, in input
// order. It is a pure function of its arguments: identical inputs always
// produce identical rows (the generation date is the one time-dependent
// field). An empty payer set is rejected before any file is produced.
func BuildExportRows(alumnos []models.Alumno, p Period, cfg ExportConfig, now time.Time) ([]ExportRow, error) {
	if len(alumnos) == 0 {
		return nil, &ValidationError{Reason: "no alumnos to export"}
	}

	rows := make([]ExportRow, 0, len(alumnos))
	date := now.Format("20060102")
	for _, a := range alumnos {
		tariff, err := EffectiveTariff(a)
		if err != nil {
			return nil, err
		}

		comprobante := comprobanteFacturaB
		if a.InvoiceType == models.InvoiceTypeA {
			comprobante = comprobanteFacturaA
		}

		document := a.DocumentNumber
		if document == "" {
			document = "0"
		}

		recipient := a.LegalName
		if recipient == "" {
			recipient = a.DisplayName()
		}

		rows = append(rows, ExportRow{
			Date:            date,
			ComprobanteType: comprobante,
			PointOfSale:     cfg.PointOfSale,
			DocumentType:    documentTypeDNI,
			DocumentNumber:  document,
			RecipientName:   recipient,
			TotalAmount:     tariff,
			Concept:         conceptServices,
			Detail: fmt.Sprintf("Servicios de atencion prestados a %s (DNI %s), periodo %s %d",
				a.DisplayName(), document, p.MonthName(), p.Year),
		})
	}
	return rows, nil
}

// WriteWorkbook serializes the rows into a single-sheet workbook. On any
// failure nothing is written to w, so a partial file never reaches the
// caller.
func WriteWorkbook(w io.Writer, rows []ExportRow) error {
	f := excelize.NewFile()
	sheetName := "Facturacion"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	for i, header := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return err
		}
	}

	for i, r := range rows {
		values := []interface{}{
			r.Date,
			r.ComprobanteType,
			r.PointOfSale,
			r.DocumentType,
			r.DocumentNumber,
			r.RecipientName,
			r.TotalAmount.StringFixed(2),
			r.Concept,
			r.Detail,
		}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return err
			}
		}
	}

	return f.Write(w)
}

// ExportFileName encodes the export scope plus a batch identifier for
// uniqueness. Downstream consumers key off column headers, not the name.
func ExportFileName(cfg ExportConfig, p Period) string {
	batch := uuid.NewString()[:8]
	return fmt.Sprintf("%s_%s_%s_%d_%s.xlsx", cfg.SystemName, cfg.PointOfSale, p.MonthName(), p.Year, batch)
}
