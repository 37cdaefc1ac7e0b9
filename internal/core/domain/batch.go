package domain

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Batch is a shipment lot belonging to one invoice.
type Batch struct {
	BatchNo     string
	InvoiceNo   string
	ProductName string
	MfgDate     time.Time
	ExpDate     time.Time
	Quantity    int
	NumOfShips  int
	Available   int
	CreatedOn   time.Time
}

// Validate checks the fields required to persist the batch.
func (b *Batch) Validate() error {
	b.BatchNo = strings.TrimSpace(b.BatchNo)
	if b.BatchNo == "" {
		return fmt.Errorf("%w: batch_no is required", ErrValidation)
	}
	if b.Quantity < 0 {
		return fmt.Errorf("%w: quantity cannot be negative (batch_no %q)", ErrValidation, b.BatchNo)
	}
	if b.NumOfShips < 0 {
		return fmt.Errorf("%w: num_of_ships cannot be negative (batch_no %q)", ErrValidation, b.BatchNo)
	}
	// quantity, num_of_ships and available are INTEGER columns.
	if b.Quantity > math.MaxInt32 {
		return fmt.Errorf("%w: quantity is too large (batch_no %q)", ErrValidation, b.BatchNo)
	}
	if b.NumOfShips > math.MaxInt32 {
		return fmt.Errorf("%w: num_of_ships is too large (batch_no %q)", ErrValidation, b.BatchNo)
	}
	if int64(b.Quantity)*int64(b.NumOfShips) > math.MaxInt32 {
		return fmt.Errorf("%w: quantity * num_of_ships is too large (batch_no %q)", ErrValidation, b.BatchNo)
	}
	return nil
}

// PrepareForStorage binds the batch to its owning invoice and fixes the
// available count. Available is never recomputed after creation.
func (b *Batch) PrepareForStorage(invoiceNo string, now time.Time) {
	b.InvoiceNo = invoiceNo
	b.Available = b.Quantity * b.NumOfShips
	if b.CreatedOn.IsZero() {
		b.CreatedOn = now
	}
}

// BatchView is the API representation of a batch.
type BatchView struct {
	BatchNo     string    `json:"batch_no"`
	InvoiceNo   string    `json:"invoice_no"`
	ProductName string    `json:"product_name"`
	MfgDate     string    `json:"mfg_date"`
	ExpDate     string    `json:"exp_date"`
	Quantity    int       `json:"quantity"`
	NumOfShips  int       `json:"num_of_ships"`
	Available   int       `json:"available"`
	CreatedOn   time.Time `json:"created_on"`
}

func (b Batch) View() BatchView {
	return BatchView{
		BatchNo:     b.BatchNo,
		InvoiceNo:   b.InvoiceNo,
		ProductName: b.ProductName,
		MfgDate:     FormatDate(b.MfgDate),
		ExpDate:     FormatDate(b.ExpDate),
		Quantity:    b.Quantity,
		NumOfShips:  b.NumOfShips,
		Available:   b.Available,
		CreatedOn:   b.CreatedOn,
	}
}
