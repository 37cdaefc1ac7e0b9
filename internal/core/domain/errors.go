// internal/core/domain/errors.go
package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the invoice workflow. Handlers map them to
// HTTP status codes; everything else is treated as internal.
var (
	ErrMissingData      = errors.New("missing data")
	ErrNoBatches        = errors.New("invoice has no batches")
	ErrValidation       = errors.New("validation failed")
	ErrDuplicateInvoice = errors.New("duplicate invoice_no")
	ErrDuplicateBatch   = errors.New("duplicate batch_no")
	ErrInvoiceNotFound  = errors.New("invoice not found")
	ErrInvalidAttribute = errors.New("invalid attribute")
	ErrInvalidValue     = errors.New("invalid value")
)

// KeyError ties a sentinel error to the key (invoice_no, batch_no or
// attribute name) that caused it.
type KeyError struct {
	Err    error
	Key    string
	Detail string
}

func (e *KeyError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s %q: %s", e.Err, e.Key, e.Detail)
	}
	return fmt.Sprintf("%s %q", e.Err, e.Key)
}

func (e *KeyError) Unwrap() error { return e.Err }

// NewKeyError wraps err with the offending key.
func NewKeyError(err error, key string) *KeyError {
	return &KeyError{Err: err, Key: key}
}

// ErrorKey returns the key carried by err, if any.
func ErrorKey(err error) string {
	var ke *KeyError
	if errors.As(err, &ke) {
		return ke.Key
	}
	return ""
}

// IsClientError reports whether err was caused by the request rather than
// by the store.
func IsClientError(err error) bool {
	return errors.Is(err, ErrMissingData) ||
		errors.Is(err, ErrNoBatches) ||
		errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrInvalidAttribute) ||
		errors.Is(err, ErrInvalidValue) ||
		errors.Is(err, ErrDuplicateInvoice) ||
		errors.Is(err, ErrDuplicateBatch) ||
		errors.Is(err, ErrInvoiceNotFound)
}
