package domain

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceField names an invoice attribute that an update request may carry.
type InvoiceField string

const (
	FieldInvoiceNo    InvoiceField = "invoice_no"
	FieldInvoiceDate  InvoiceField = "invoice_date"
	FieldSupplierName InvoiceField = "supplier_name"
	FieldAmount       InvoiceField = "amount"
	FieldRemarks      InvoiceField = "remarks"
	FieldCreatedOn    InvoiceField = "created_on"
)

// immutableFields are accepted in an update request but never applied.
var immutableFields = map[InvoiceField]bool{
	FieldInvoiceNo: true,
	FieldCreatedOn: true,
}

// setter coerces a raw JSON value and returns the mutation to apply.
type setter func(raw any) (func(*Invoice), error)

func dateSetter(set func(*Invoice, time.Time)) setter {
	return func(raw any) (func(*Invoice), error) {
		v, err := coerceDate(raw)
		if err != nil {
			return nil, err
		}
		return func(inv *Invoice) { set(inv, v) }, nil
	}
}

func stringSetter(set func(*Invoice, string)) setter {
	return func(raw any) (func(*Invoice), error) {
		v, err := coerceString(raw)
		if err != nil {
			return nil, err
		}
		return func(inv *Invoice) { set(inv, v) }, nil
	}
}

func decimalSetter(check func(decimal.Decimal) error, set func(*Invoice, decimal.Decimal)) setter {
	return func(raw any) (func(*Invoice), error) {
		v, err := coerceDecimal(raw)
		if err != nil {
			return nil, err
		}
		if err := check(v); err != nil {
			return nil, err
		}
		return func(inv *Invoice) { set(inv, v) }, nil
	}
}

// updatableFields is the allow-list of invoice attributes an update may change.
var updatableFields = map[InvoiceField]setter{
	FieldInvoiceDate:  dateSetter(func(inv *Invoice, v time.Time) { inv.InvoiceDate = v }),
	FieldSupplierName: stringSetter(func(inv *Invoice, v string) { inv.SupplierName = v }),
	FieldAmount:       decimalSetter(ValidateAmount, func(inv *Invoice, v decimal.Decimal) { inv.Amount = v }),
	FieldRemarks:      stringSetter(func(inv *Invoice, v string) { inv.Remarks = v }),
}

// InvoicePatch is a validated set of changes for one invoice.
type InvoicePatch struct {
	InvoiceNo string
	fields    []InvoiceField
	apply     []func(*Invoice)
}

// NewInvoicePatch builds a patch from a flat attribute map. The map must carry
// invoice_no. Immutable attributes are skipped; unknown attributes and values
// of the wrong type are rejected before anything is applied. Keys are checked
// in sorted order so the reported key is stable.
func NewInvoicePatch(data map[string]any) (*InvoicePatch, error) {
	if len(data) == 0 {
		return nil, ErrMissingData
	}

	rawNo, ok := data[string(FieldInvoiceNo)]
	if !ok {
		return nil, NewKeyError(ErrMissingData, string(FieldInvoiceNo))
	}
	invoiceNo, err := coerceString(rawNo)
	if err != nil {
		return nil, &KeyError{Err: ErrInvalidValue, Key: string(FieldInvoiceNo), Detail: err.Error()}
	}
	invoiceNo = strings.TrimSpace(invoiceNo)
	if invoiceNo == "" {
		return nil, NewKeyError(ErrMissingData, string(FieldInvoiceNo))
	}

	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	patch := &InvoicePatch{InvoiceNo: invoiceNo}
	for _, k := range keys {
		field := InvoiceField(k)
		if immutableFields[field] {
			continue
		}
		set, ok := updatableFields[field]
		if !ok {
			return nil, NewKeyError(ErrInvalidAttribute, k)
		}
		fn, err := set(data[k])
		if err != nil {
			return nil, &KeyError{Err: ErrInvalidValue, Key: k, Detail: err.Error()}
		}
		patch.fields = append(patch.fields, field)
		patch.apply = append(patch.apply, fn)
	}
	return patch, nil
}

// Fields lists the attributes the patch changes, in application order.
func (p *InvoicePatch) Fields() []InvoiceField {
	return p.fields
}

// Empty reports whether the patch changes nothing.
func (p *InvoicePatch) Empty() bool {
	return len(p.apply) == 0
}

// Apply mutates inv in place.
func (p *InvoicePatch) Apply(inv *Invoice) {
	for _, fn := range p.apply {
		fn(inv)
	}
}
