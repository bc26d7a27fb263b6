/*
Package payroll models payroll receipts and exports period summaries.

Receipts are stored artifacts (PDF blobs uploaded by the payroll provider)
plus structured amounts. Amounts use shopspring/decimal so totals never pick
up float drift; the XLSX export is built with excelize.
*/
package payroll

import (
	"bytes"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// Receipt is one payroll receipt for one employee and period.
type Receipt struct {
	ID           string
	EmployeeID   string
	EmployeeName string
	Year         int
	Period       string // e.g. "2025-1Q" (first fortnight of January)
	Gross        decimal.Decimal
	Deductions   decimal.Decimal
	Net          decimal.Decimal
	IssuedAt     time.Time
	Filename     string
	ContentType  string
}

// Totals sums gross, deductions and net over a set of receipts.
func Totals(receipts []Receipt) (gross, deductions, net decimal.Decimal) {
	for _, r := range receipts {
		gross = gross.Add(r.Gross)
		deductions = deductions.Add(r.Deductions)
		net = net.Add(r.Net)
	}
	return gross, deductions, net
}

const exportSheet = "Recibos"

// ExportXLSX renders a receipt summary spreadsheet: one row per receipt and
// a totals row. Returns the serialized workbook bytes.
func ExportXLSX(receipts []Receipt) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(exportSheet)
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("drop default sheet: %w", err)
	}

	headers := []string{"Colaborador", "Año", "Periodo", "Percepciones", "Deducciones", "Neto", "Emitido"}
	for col, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(exportSheet, cell, h); err != nil {
			return nil, fmt.Errorf("write header: %w", err)
		}
	}

	row := 2
	for _, r := range receipts {
		values := []any{
			r.EmployeeName,
			r.Year,
			r.Period,
			r.Gross.InexactFloat64(),
			r.Deductions.InexactFloat64(),
			r.Net.InexactFloat64(),
			r.IssuedAt.Format("2006-01-02"),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(exportSheet, cell, v); err != nil {
				return nil, fmt.Errorf("write row %d: %w", row, err)
			}
		}
		row++
	}

	gross, deductions, net := Totals(receipts)
	totals := []any{"Total", "", "", gross.InexactFloat64(), deductions.InexactFloat64(), net.InexactFloat64(), ""}
	for col, v := range totals {
		cell, _ := excelize.CoordinatesToCellName(col+1, row)
		if err := f.SetCellValue(exportSheet, cell, v); err != nil {
			return nil, fmt.Errorf("write totals: %w", err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// MIMEExcel is the content type for the XLSX export.
const MIMEExcel = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
