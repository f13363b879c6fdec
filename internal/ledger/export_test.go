package ledger

import (
	"bytes"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/ferdinand528/SAGA-Santa-Catalina-sub000/models"
)

func exportAlumno(t *testing.T, id uint, invoiceType string) models.Alumno {
	t.Helper()
	a := alumnoWithTariff(t, id, "12000")
	a.LastName = "Perez"
	a.FirstName = "Juan"
	a.DocumentNumber = "30111222"
	a.LegalName = "Perez Juan"
	a.InvoiceType = invoiceType
	return a
}

func TestBuildExportRowsComprobanteCoding(t *testing.T) {
	// Invoice types A, B, B must code 001, 006, 006 in input order.
	alumnos := []models.Alumno{
		exportAlumno(t, 1, models.InvoiceTypeA),
		exportAlumno(t, 2, models.InvoiceTypeB),
		exportAlumno(t, 3, models.InvoiceTypeB),
	}
	period := Period{Month: time.March, Year: 2026}
	cfg := ExportConfig{SystemName: "saga", PointOfSale: "00003"}

	rows, err := BuildExportRows(alumnos, period, cfg, time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("BuildExportRows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}

	want := []string{"001", "006", "006"}
	for i, row := range rows {
		if row.ComprobanteType != want[i] {
			t.Errorf("row %d comprobante = %q, want %q", i, row.ComprobanteType, want[i])
		}
		if row.PointOfSale != "00003" {
			t.Errorf("row %d point of sale = %q, want 00003", i, row.PointOfSale)
		}
		if row.DocumentType != "96" {
			t.Errorf("row %d document type = %q, want 96", i, row.DocumentType)
		}
		if row.Concept != "2" {
			t.Errorf("row %d concept = %q, want 2", i, row.Concept)
		}
		if row.Date != "20260315" {
			t.Errorf("row %d date = %q, want 20260315", i, row.Date)
		}
	}
}

func TestBuildExportRowsDeterministic(t *testing.T) {
	alumnos := []models.Alumno{exportAlumno(t, 1, models.InvoiceTypeA)}
	period := Period{Month: time.March, Year: 2026}
	cfg := ExportConfig{SystemName: "saga", PointOfSale: "00003"}
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

	first, err := BuildExportRows(alumnos, period, cfg, now)
	if err != nil {
		t.Fatalf("BuildExportRows: %v", err)
	}
	second, err := BuildExportRows(alumnos, period, cfg, now)
	if err != nil {
		t.Fatalf("BuildExportRows: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("identical inputs produced different rows")
	}
}

func TestBuildExportRowsEmptySet(t *testing.T) {
	_, err := BuildExportRows(nil, Period{Month: time.March, Year: 2026}, ExportConfig{}, time.Now())
	if !IsValidation(err) {
		t.Errorf("expected ValidationError for empty payer set, got %v", err)
	}
}

func TestBuildExportRowsFallbacks(t *testing.T) {
	a := alumnoWithTariff(t, 1, "8000")
	a.LastName = "Gomez"
	a.FirstName = "Ana"
	// No legal name and no document number on file.
	a.InvoiceType = models.InvoiceTypeB

	rows, err := BuildExportRows([]models.Alumno{a}, Period{Month: time.July, Year: 2026}, ExportConfig{PointOfSale: "00003"}, time.Now())
	if err != nil {
		t.Fatalf("BuildExportRows: %v", err)
	}

	if rows[0].DocumentNumber != "0" {
		t.Errorf("document number = %q, want fallback 0", rows[0].DocumentNumber)
	}
	if rows[0].RecipientName != "Gomez, Ana" {
		t.Errorf("recipient = %q, want display-name fallback", rows[0].RecipientName)
	}
	if !strings.Contains(rows[0].Detail, "Julio 2026") {
		t.Errorf("detail %q does not mention the period", rows[0].Detail)
	}
}

func TestWriteWorkbookHeaderContract(t *testing.T) {
	alumnos := []models.Alumno{exportAlumno(t, 1, models.InvoiceTypeA)}
	period := Period{Month: time.March, Year: 2026}
	cfg := ExportConfig{SystemName: "saga", PointOfSale: "00003"}

	rows, err := BuildExportRows(alumnos, period, cfg, time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("BuildExportRows: %v", err)
	}

	var buf bytes.Buffer
	if err := WriteWorkbook(&buf, rows); err != nil {
		t.Fatalf("WriteWorkbook: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("reading workbook back: %v", err)
	}
	defer f.Close()

	got, err := f.GetRows("Facturacion")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d sheet rows, want header + 1 data row", len(got))
	}

	// The header order is the wire contract with the downstream import.
	if !reflect.DeepEqual(got[0], exportHeaders) {
		t.Errorf("header row = %v, want %v", got[0], exportHeaders)
	}
	if got[1][1] != "001" {
		t.Errorf("data row comprobante = %q, want 001", got[1][1])
	}
	if got[1][6] != "12000.00" {
		t.Errorf("data row amount = %q, want 12000.00", got[1][6])
	}
}

func TestExportFileNameEncodesScope(t *testing.T) {
	cfg := ExportConfig{SystemName: "saga", PointOfSale: "00003"}
	name := ExportFileName(cfg, Period{Month: time.March, Year: 2026})

	for _, part := range []string{"saga", "00003", "Marzo", "2026", ".xlsx"} {
		if !strings.Contains(name, part) {
			t.Errorf("filename %q missing %q", name, part)
		}
	}
}
