// internal/handlers/invoice.go
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ammerola/invoices-be/internal/core/domain"
	"github.com/ammerola/invoices-be/internal/core/ports"
)

const (
	msgAddMissingData   = "Sorry but 'data' argument value is missing!"
	msgAddNoBatches     = "No data received. Cannot add invoice"
	msgAddDupInvoice    = "Cannot add Invoice. Duplicate 'invoice_no' '%s'"
	msgAddDupBatch      = "Cannot add batch. Duplicate 'batch_no' '%s'"
	msgAddInternal      = "Error while updating the database. Probably internal."
	msgAddSuccess       = "Invoice and batch(es) added successfully!"
	msgUpdateNoData     = "no invoice data received"
	msgNoInvoiceNo      = "no invoice_no given"
	msgInvalidAttribute = "Invalid attribute '%s'"
	msgUpdateInternal   = "Internal error"
	msgUpdateSuccess    = "Successful"
	msgNotFound         = "no such invoice with invoice_no '%s'"
	msgDeleteInternal   = "Internal Error while trying to delete"
	msgDeleteSuccess    = "invoice deleted successfully"
	msgBodyTooLarge     = "request body too large"
)

var errBodyTooLarge = errors.New("request body too large")

// InvoiceHandler handles invoice-related HTTP requests
type InvoiceHandler struct {
	responder
	service ports.InvoiceService
	logger  *slog.Logger
}

// NewInvoiceHandler creates a new invoice handler. legacy restores the old
// contract where every failure is a 500 and a missing invoice reads as [].
func NewInvoiceHandler(service ports.InvoiceService, legacy bool, logger *slog.Logger) *InvoiceHandler {
	logger = logger.With(slog.String("handler", "invoice"))
	return &InvoiceHandler{
		responder: responder{legacy: legacy, logger: logger},
		service:   service,
		logger:    logger,
	}
}

// ListInvoices handles GET /api/v1/invoice
func (h *InvoiceHandler) ListInvoices(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	invoices, err := h.service.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list invoices",
			slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, msgUpdateInternal)
		return
	}

	h.respondJSON(w, http.StatusOK, invoices)
}

// GetInvoice handles GET /api/v1/invoice/{invoice_no}
func (h *InvoiceHandler) GetInvoice(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	invoiceNo := r.PathValue("invoice_no")

	detail, err := h.service.Get(ctx, invoiceNo)
	switch {
	case err == nil:
		h.respondJSON(w, http.StatusOK, detail)
	case errors.Is(err, domain.ErrInvoiceNotFound) && h.legacy:
		h.respondJSON(w, http.StatusOK, []domain.InvoiceDetail{})
	case errors.Is(err, domain.ErrInvoiceNotFound):
		h.respondError(w, http.StatusNotFound, fmt.Sprintf(msgNotFound, invoiceNo))
	case errors.Is(err, domain.ErrMissingData):
		h.respondError(w, http.StatusBadRequest, msgNoInvoiceNo)
	default:
		h.logger.ErrorContext(ctx, "failed to get invoice",
			slog.String("invoice_no", invoiceNo),
			slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, msgUpdateInternal)
	}
}

// AddInvoice handles POST /api/v1/invoice
func (h *InvoiceHandler) AddInvoice(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req AddInvoiceRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondAddError(w, r, err)
		return
	}

	invoice, batches, err := req.ToDomain()
	if err != nil {
		h.respondAddError(w, r, err)
		return
	}

	if err := h.service.Add(ctx, invoice, batches); err != nil {
		h.respondAddError(w, r, err)
		return
	}

	h.respondMessage(w, http.StatusCreated, msgAddSuccess)
}

func (h *InvoiceHandler) respondAddError(w http.ResponseWriter, r *http.Request, err error) {
	var msg string
	switch {
	case errors.Is(err, errBodyTooLarge):
		h.respondError(w, http.StatusRequestEntityTooLarge, msgBodyTooLarge)
		return
	case errors.Is(err, domain.ErrMissingData):
		msg = msgAddMissingData
	case errors.Is(err, domain.ErrNoBatches):
		msg = msgAddNoBatches
	case errors.Is(err, domain.ErrDuplicateInvoice):
		msg = fmt.Sprintf(msgAddDupInvoice, domain.ErrorKey(err))
	case errors.Is(err, domain.ErrDuplicateBatch):
		msg = fmt.Sprintf(msgAddDupBatch, domain.ErrorKey(err))
	case domain.IsClientError(err):
		msg = err.Error()
	default:
		h.logger.ErrorContext(r.Context(), "failed to add invoice",
			slog.String("error", err.Error()))
		msg = msgAddInternal
	}
	h.respondError(w, statusFor(err), msg)
}

// UpdateInvoice handles PUT /api/v1/invoice
func (h *InvoiceHandler) UpdateInvoice(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var data map[string]any
	if err := decodeJSON(r, &data); err != nil {
		if errors.Is(err, errBodyTooLarge) {
			h.respondError(w, http.StatusRequestEntityTooLarge, msgBodyTooLarge)
			return
		}
		if errors.Is(err, domain.ErrMissingData) {
			h.respondError(w, http.StatusBadRequest, msgUpdateNoData)
			return
		}
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	err := h.service.Update(ctx, data)
	if err == nil {
		h.respondMessage(w, http.StatusOK, msgUpdateSuccess)
		return
	}

	var msg string
	switch {
	case errors.Is(err, domain.ErrMissingData) && domain.ErrorKey(err) == string(domain.FieldInvoiceNo):
		msg = msgNoInvoiceNo
	case errors.Is(err, domain.ErrMissingData):
		msg = msgUpdateNoData
	case errors.Is(err, domain.ErrInvalidAttribute):
		msg = fmt.Sprintf(msgInvalidAttribute, domain.ErrorKey(err))
	case errors.Is(err, domain.ErrInvoiceNotFound):
		msg = fmt.Sprintf(msgNotFound, domain.ErrorKey(err))
	case domain.IsClientError(err):
		msg = err.Error()
	default:
		h.logger.ErrorContext(ctx, "failed to update invoice",
			slog.String("error", err.Error()))
		msg = msgUpdateInternal
	}
	h.respondError(w, statusFor(err), msg)
}

// DeleteInvoice handles DELETE /api/v1/invoice/{invoice_no} and DELETE
// /api/v1/invoice, where the number comes from the query string or body.
func (h *InvoiceHandler) DeleteInvoice(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	invoiceNo := r.PathValue("invoice_no")
	if invoiceNo == "" {
		invoiceNo = r.URL.Query().Get("invoice_no")
	}
	if invoiceNo == "" {
		var body struct {
			InvoiceNo string `json:"invoice_no"`
		}
		if err := decodeJSON(r, &body); err != nil && !errors.Is(err, domain.ErrMissingData) {
			h.respondError(w, http.StatusBadRequest, msgNoInvoiceNo)
			return
		}
		invoiceNo = body.InvoiceNo
	}

	err := h.service.Delete(ctx, invoiceNo)
	if err == nil {
		h.respondMessage(w, http.StatusOK, msgDeleteSuccess)
		return
	}

	var msg string
	switch {
	case errors.Is(err, domain.ErrMissingData):
		msg = msgNoInvoiceNo
	case errors.Is(err, domain.ErrInvoiceNotFound):
		msg = fmt.Sprintf(msgNotFound, strings.TrimSpace(invoiceNo))
	default:
		h.logger.ErrorContext(ctx, "failed to delete invoice",
			slog.String("invoice_no", invoiceNo),
			slog.String("error", err.Error()))
		msg = msgDeleteInternal
	}
	h.respondError(w, statusFor(err), msg)
}

// decodeJSON decodes the request body into dst. Numbers are kept as
// json.Number so amounts never pass through float64.
func decodeJSON(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return domain.ErrMissingData
	}

	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	err := dec.Decode(dst)
	if err == nil {
		return nil
	}

	var (
		maxErr  *http.MaxBytesError
		typeErr *json.UnmarshalTypeError
	)
	switch {
	case errors.Is(err, io.EOF):
		return domain.ErrMissingData
	case errors.As(err, &maxErr):
		return errBodyTooLarge
	case errors.As(err, &typeErr):
		return &domain.KeyError{Err: domain.ErrInvalidValue, Key: typeErr.Field, Detail: "expected " + typeErr.Type.String()}
	default:
		return fmt.Errorf("%w: malformed JSON body: %v", domain.ErrInvalidValue, err)
	}
}

// Request DTOs

// AddInvoiceRequest represents the request body for adding an invoice
type AddInvoiceRequest struct {
	InvoiceData *InvoiceRequest `json:"invoice_data"`
	Batches     []BatchRequest  `json:"batches"`
}

// InvoiceRequest carries the invoice fields of an add request
type InvoiceRequest struct {
	InvoiceNo    string      `json:"invoice_no"`
	InvoiceDate  string      `json:"invoice_date"`
	SupplierName string      `json:"supplier_name"`
	Amount       json.Number `json:"amount"`
	Remarks      string      `json:"remarks"`
}

// BatchRequest carries one batch of an add request
type BatchRequest struct {
	BatchNo     string `json:"batch_no"`
	ProductName string `json:"product_name"`
	MfgDate     string `json:"mfg_date"`
	ExpDate     string `json:"exp_date"`
	Quantity    int    `json:"quantity"`
	NumOfShips  int    `json:"num_of_ships"`
}

// ToDomain converts the request into domain values. Structural checks
// (required keys, duplicates) are left to the service.
func (r *AddInvoiceRequest) ToDomain() (*domain.Invoice, []domain.Batch, error) {
	if r.InvoiceData == nil || *r.InvoiceData == (InvoiceRequest{}) {
		return nil, nil, domain.ErrMissingData
	}

	invoice := &domain.Invoice{
		InvoiceNo:    r.InvoiceData.InvoiceNo,
		SupplierName: r.InvoiceData.SupplierName,
		Remarks:      r.InvoiceData.Remarks,
	}

	var err error
	if invoice.InvoiceDate, err = optionalDate(r.InvoiceData.InvoiceDate, "invoice_date"); err != nil {
		return nil, nil, err
	}
	if r.InvoiceData.Amount != "" {
		invoice.Amount, err = decimal.NewFromString(r.InvoiceData.Amount.String())
		if err != nil {
			return nil, nil, &domain.KeyError{Err: domain.ErrInvalidValue, Key: "amount", Detail: err.Error()}
		}
	}

	batches := make([]domain.Batch, 0, len(r.Batches))
	for _, br := range r.Batches {
		b := domain.Batch{
			BatchNo:     br.BatchNo,
			ProductName: br.ProductName,
			Quantity:    br.Quantity,
			NumOfShips:  br.NumOfShips,
		}
		if b.MfgDate, err = optionalDate(br.MfgDate, "mfg_date"); err != nil {
			return nil, nil, err
		}
		if b.ExpDate, err = optionalDate(br.ExpDate, "exp_date"); err != nil {
			return nil, nil, err
		}
		batches = append(batches, b)
	}

	return invoice, batches, nil
}

func optionalDate(s, key string) (t time.Time, err error) {
	if strings.TrimSpace(s) == "" {
		return t, nil
	}
	t, err = domain.ParseDate(s)
	if err != nil {
		return t, &domain.KeyError{Err: domain.ErrInvalidValue, Key: key, Detail: err.Error()}
	}
	return t, nil
}
