// internal/core/domain/invoice.go
package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Invoice is a billing record identified by InvoiceNo. It owns zero or more
// batches.
type Invoice struct {
	InvoiceNo    string
	InvoiceDate  time.Time
	SupplierName string
	Amount       decimal.Decimal
	Remarks      string
	CreatedOn    time.Time
}

// Validate checks the fields required to persist the invoice.
func (i *Invoice) Validate() error {
	i.InvoiceNo = strings.TrimSpace(i.InvoiceNo)
	if i.InvoiceNo == "" {
		return fmt.Errorf("%w: invoice_no is required", ErrValidation)
	}
	if i.InvoiceDate.IsZero() {
		return fmt.Errorf("%w: invoice_date is required", ErrValidation)
	}
	return ValidateAmount(i.Amount)
}

// Amounts are stored as NUMERIC(12,2).
const (
	amountIntegerDigits = 10
	amountScale         = 2
)

var amountLimit = decimal.New(1, amountIntegerDigits)

// ValidateAmount rejects amounts the store cannot hold exactly.
func ValidateAmount(d decimal.Decimal) error {
	if d.IsNegative() {
		return fmt.Errorf("%w: amount cannot be negative", ErrValidation)
	}
	if d.GreaterThanOrEqual(amountLimit) {
		return fmt.Errorf("%w: amount exceeds %d integer digits", ErrValidation, amountIntegerDigits)
	}
	if !d.Equal(d.Truncate(amountScale)) {
		return fmt.Errorf("%w: amount has more than %d decimal places", ErrValidation, amountScale)
	}
	return nil
}

// PrepareForStorage stamps the audit field.
func (i *Invoice) PrepareForStorage(now time.Time) {
	if i.CreatedOn.IsZero() {
		i.CreatedOn = now
	}
}

// InvoiceView is the low-detail representation of an invoice.
type InvoiceView struct {
	InvoiceNo    string          `json:"invoice_no"`
	InvoiceDate  string          `json:"invoice_date"`
	SupplierName string          `json:"supplier_name"`
	Amount       decimal.Decimal `json:"amount"`
	Remarks      string          `json:"remarks"`
	CreatedOn    time.Time       `json:"created_on"`
}

// InvoiceDetail is the high-detail representation: the invoice plus all of
// its batches.
type InvoiceDetail struct {
	InvoiceView
	Batches []BatchView `json:"batches"`
}

// View returns the low-detail representation.
func (i Invoice) View() InvoiceView {
	return InvoiceView{
		InvoiceNo:    i.InvoiceNo,
		InvoiceDate:  FormatDate(i.InvoiceDate),
		SupplierName: i.SupplierName,
		Amount:       i.Amount,
		Remarks:      i.Remarks,
		CreatedOn:    i.CreatedOn,
	}
}

// Detail returns the high-detail representation with the given batches.
func (i Invoice) Detail(batches []Batch) InvoiceDetail {
	views := make([]BatchView, 0, len(batches))
	for _, b := range batches {
		views = append(views, b.View())
	}
	return InvoiceDetail{InvoiceView: i.View(), Batches: views}
}
