// internal/adapters/export/workbook.go
package export

import (
	"bytes"
	"fmt"
	"io"

	"github.com/tealeg/xlsx/v3"

	"github.com/ammerola/invoices-be/internal/core/domain"
)

// ContentType is the MIME type of the generated workbook.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const (
	SheetInvoices = "Invoices"
	SheetBatches  = "Batches"

	amountFormat = "#,##0.00"
	columnWidth  = 18
)

var (
	invoiceHeaders = []string{
		"Invoice No", "Invoice Date", "Supplier", "Amount", "Remarks", "Batches", "Created On",
	}
	batchHeaders = []string{
		"Batch No", "Invoice No", "Product", "Mfg Date", "Exp Date",
		"Quantity", "Ships", "Available", "Created On",
	}
)

// Summary counts the rows written to each sheet.
type Summary struct {
	Invoices int `json:"invoices"`
	Batches  int `json:"batches"`
}

// Write renders details as an xlsx workbook with one sheet of invoices and
// one of batches.
func Write(w io.Writer, details []domain.InvoiceDetail) (Summary, error) {
	file, summary, err := build(details)
	if err != nil {
		return Summary{}, err
	}
	if err := file.Write(w); err != nil {
		return Summary{}, fmt.Errorf("failed to write workbook: %w", err)
	}
	return summary, nil
}

// Encode is Write into memory.
func Encode(details []domain.InvoiceDetail) ([]byte, Summary, error) {
	var buf bytes.Buffer
	summary, err := Write(&buf, details)
	if err != nil {
		return nil, Summary{}, err
	}
	return buf.Bytes(), summary, nil
}

func build(details []domain.InvoiceDetail) (*xlsx.File, Summary, error) {
	file := xlsx.NewFile()

	invoices, err := newSheet(file, SheetInvoices, invoiceHeaders)
	if err != nil {
		return nil, Summary{}, err
	}
	batches, err := newSheet(file, SheetBatches, batchHeaders)
	if err != nil {
		return nil, Summary{}, err
	}

	var summary Summary
	for _, d := range details {
		row := invoices.AddRow()
		row.AddCell().SetString(d.InvoiceNo)
		row.AddCell().SetString(d.InvoiceDate)
		row.AddCell().SetString(d.SupplierName)
		row.AddCell().SetFloatWithFormat(d.Amount.InexactFloat64(), amountFormat)
		row.AddCell().SetString(d.Remarks)
		row.AddCell().SetInt(len(d.Batches))
		row.AddCell().SetString(d.CreatedOn.UTC().Format("2006-01-02 15:04:05"))
		summary.Invoices++

		for _, b := range d.Batches {
			row := batches.AddRow()
			row.AddCell().SetString(b.BatchNo)
			row.AddCell().SetString(b.InvoiceNo)
			row.AddCell().SetString(b.ProductName)
			row.AddCell().SetString(b.MfgDate)
			row.AddCell().SetString(b.ExpDate)
			row.AddCell().SetInt(b.Quantity)
			row.AddCell().SetInt(b.NumOfShips)
			row.AddCell().SetInt(b.Available)
			row.AddCell().SetString(b.CreatedOn.UTC().Format("2006-01-02 15:04:05"))
			summary.Batches++
		}
	}

	return file, summary, nil
}

func newSheet(file *xlsx.File, name string, headers []string) (*xlsx.Sheet, error) {
	sheet, err := file.AddSheet(name)
	if err != nil {
		return nil, fmt.Errorf("failed to add %s sheet: %w", name, err)
	}

	header := sheet.AddRow()
	for _, h := range headers {
		cell := header.AddCell()
		cell.SetString(h)
		style := cell.GetStyle()
		style.Font.Bold = true
		style.Fill.PatternType = "solid"
		style.Fill.FgColor = "FFDDDDDD"
	}

	// Column indexes are 1-based.
	sheet.SetColWidth(1, len(headers), columnWidth)

	return sheet, nil
}
