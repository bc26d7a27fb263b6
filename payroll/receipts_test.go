package payroll

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleReceipts() []Receipt {
	return []Receipt{
		{
			ID: "rcpt-1", EmployeeID: "emp-1", EmployeeName: "María González",
			Year: 2025, Period: "2025-01A",
			Gross:      decimal.RequireFromString("15000.00"),
			Deductions: decimal.RequireFromString("3200.50"),
			Net:        decimal.RequireFromString("11799.50"),
			IssuedAt:   time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			ID: "rcpt-2", EmployeeID: "emp-1", EmployeeName: "María González",
			Year: 2025, Period: "2025-01B",
			Gross:      decimal.RequireFromString("15000.00"),
			Deductions: decimal.RequireFromString("3200.50"),
			Net:        decimal.RequireFromString("11799.50"),
			IssuedAt:   time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
		},
	}
}

func TestTotals(t *testing.T) {
	gross, deductions, net := Totals(sampleReceipts())

	assert.True(t, gross.Equal(decimal.RequireFromString("30000.00")), "gross = %s", gross)
	assert.True(t, deductions.Equal(decimal.RequireFromString("6401.00")), "deductions = %s", deductions)
	assert.True(t, net.Equal(decimal.RequireFromString("23599.00")), "net = %s", net)
}

func TestExportXLSX(t *testing.T) {
	data, err := ExportXLSX(sampleReceipts())
	require.NoError(t, err)
	require.NotEmpty(t, data)

	// The workbook must re-open and carry one header row, two receipt rows
	// and a totals row.
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Recibos")
	require.NoError(t, err)
	require.Len(t, rows, 4)

	assert.Equal(t, "Colaborador", rows[0][0])
	assert.Equal(t, "María González", rows[1][0])
	assert.Equal(t, "2025-01B", rows[2][2])
	assert.Equal(t, "Total", rows[3][0])
}

func TestExportXLSX_Empty(t *testing.T) {
	data, err := ExportXLSX(nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Recibos")
	require.NoError(t, err)
	require.Len(t, rows, 2) // header + totals
}
