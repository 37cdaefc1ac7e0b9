package export_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v3"

	"github.com/ammerola/invoices-be/internal/adapters/export"
	"github.com/ammerola/invoices-be/internal/core/domain"
)

func sampleDetails() []domain.InvoiceDetail {
	created := time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC)
	inv := domain.Invoice{
		InvoiceNo:    "INV-1",
		InvoiceDate:  time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		SupplierName: "Acme Pharma",
		Amount:       decimal.RequireFromString("1250.50"),
		CreatedOn:    created,
	}
	batches := []domain.Batch{
		{BatchNo: "B-1", InvoiceNo: "INV-1", ProductName: "Paracetamol", Quantity: 10, NumOfShips: 2, Available: 20, CreatedOn: created},
		{BatchNo: "B-2", InvoiceNo: "INV-1", ExpDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), Quantity: 1, NumOfShips: 1, Available: 1, CreatedOn: created},
	}
	empty := domain.Invoice{InvoiceNo: "INV-2", InvoiceDate: inv.InvoiceDate, CreatedOn: created}

	return []domain.InvoiceDetail{inv.Detail(batches), empty.Detail(nil)}
}

func cellValue(t *testing.T, sheet *xlsx.Sheet, row, col int) string {
	t.Helper()

	cell, err := sheet.Cell(row, col)
	require.NoError(t, err)
	return cell.Value
}

func TestEncode(t *testing.T) {
	data, summary, err := export.Encode(sampleDetails())
	require.NoError(t, err)
	assert.Equal(t, export.Summary{Invoices: 2, Batches: 2}, summary)

	file, err := xlsx.OpenBinary(data)
	require.NoError(t, err)
	require.Len(t, file.Sheets, 2)
	assert.Equal(t, export.SheetInvoices, file.Sheets[0].Name)
	assert.Equal(t, export.SheetBatches, file.Sheets[1].Name)

	invoices := file.Sheet[export.SheetInvoices]
	assert.Equal(t, 3, invoices.MaxRow)
	assert.Equal(t, "Invoice No", cellValue(t, invoices, 0, 0))
	assert.Equal(t, "INV-1", cellValue(t, invoices, 1, 0))
	assert.Equal(t, "2024-01-15", cellValue(t, invoices, 1, 1))
	assert.Equal(t, "1250.5", cellValue(t, invoices, 1, 3))
	assert.Equal(t, "2", cellValue(t, invoices, 1, 5))
	assert.Equal(t, "0", cellValue(t, invoices, 2, 5))

	batches := file.Sheet[export.SheetBatches]
	assert.Equal(t, 3, batches.MaxRow)
	assert.Equal(t, "B-1", cellValue(t, batches, 1, 0))
	assert.Equal(t, "", cellValue(t, batches, 2, 3), "missing dates export as empty cells")
	assert.Equal(t, "2026-01-01", cellValue(t, batches, 2, 4))
	assert.Equal(t, "20", cellValue(t, batches, 1, 7))
}

func TestWrite_Empty(t *testing.T) {
	var buf bytes.Buffer
	summary, err := export.Write(&buf, nil)
	require.NoError(t, err)
	assert.Zero(t, summary)

	file, err := xlsx.OpenBinary(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, 1, file.Sheet[export.SheetInvoices].MaxRow)
	assert.Equal(t, 1, file.Sheet[export.SheetBatches].MaxRow)
}
