// internal/handlers/invoice_handler_test.go
package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ammerola/invoices-be/internal/core/domain"
	"github.com/ammerola/invoices-be/internal/handlers"
	"github.com/ammerola/invoices-be/test/helpers"
	"github.com/ammerola/invoices-be/test/mocks"
)

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestInvoiceHandler_GetInvoice(t *testing.T) {
	detail := helpers.CreateTestInvoice().Detail([]domain.Batch{helpers.CreateTestBatch()})

	tests := []struct {
		name           string
		legacy         bool
		setupMocks     func(*mocks.MockInvoiceService)
		expectedStatus int
		validateBody   func(*testing.T, *httptest.ResponseRecorder)
	}{
		{
			name: "returns_detail_view",
			setupMocks: func(m *mocks.MockInvoiceService) {
				m.EXPECT().Get(gomock.Any(), "INV-TEST-001").Return(&detail, nil)
			},
			expectedStatus: http.StatusOK,
			validateBody: func(t *testing.T, w *httptest.ResponseRecorder) {
				var got domain.InvoiceDetail
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
				assert.Equal(t, "INV-TEST-001", got.InvoiceNo)
				assert.Equal(t, "2024-01-15", got.InvoiceDate)
				require.Len(t, got.Batches, 1)
				assert.Equal(t, "B-TEST-001", got.Batches[0].BatchNo)
			},
		},
		{
			name: "missing_invoice_is_not_found",
			setupMocks: func(m *mocks.MockInvoiceService) {
				m.EXPECT().Get(gomock.Any(), "INV-TEST-001").
					Return(nil, domain.NewKeyError(domain.ErrInvoiceNotFound, "INV-TEST-001"))
			},
			expectedStatus: http.StatusNotFound,
			validateBody: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert.Equal(t, "no such invoice with invoice_no 'INV-TEST-001'", decodeBody(t, w)["error"])
			},
		},
		{
			name:   "legacy_missing_invoice_is_empty_list",
			legacy: true,
			setupMocks: func(m *mocks.MockInvoiceService) {
				m.EXPECT().Get(gomock.Any(), "INV-TEST-001").
					Return(nil, domain.NewKeyError(domain.ErrInvoiceNotFound, "INV-TEST-001"))
			},
			expectedStatus: http.StatusOK,
			validateBody: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert.JSONEq(t, `[]`, w.Body.String())
			},
		},
		{
			name: "service_error",
			setupMocks: func(m *mocks.MockInvoiceService) {
				m.EXPECT().Get(gomock.Any(), "INV-TEST-001").Return(nil, errors.New("connection refused"))
			},
			expectedStatus: http.StatusInternalServerError,
			validateBody: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert.Equal(t, "Internal error", decodeBody(t, w)["error"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockService := mocks.NewMockInvoiceService(ctrl)
			tt.setupMocks(mockService)
			handler := handlers.NewInvoiceHandler(mockService, tt.legacy, helpers.TestLogger())

			req := httptest.NewRequest(http.MethodGet, "/api/v1/invoice/INV-TEST-001", nil)
			req.SetPathValue("invoice_no", "INV-TEST-001")
			w := httptest.NewRecorder()

			handler.GetInvoice(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			tt.validateBody(t, w)
		})
	}
}

func TestInvoiceHandler_ListInvoices(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockService := mocks.NewMockInvoiceService(ctrl)
	mockService.EXPECT().List(gomock.Any()).Return([]domain.InvoiceView{}, nil)
	handler := handlers.NewInvoiceHandler(mockService, false, helpers.TestLogger())

	w := httptest.NewRecorder()
	handler.ListInvoices(w, httptest.NewRequest(http.MethodGet, "/api/v1/invoice", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestInvoiceHandler_AddInvoice(t *testing.T) {
	validBody := `{
		"invoice_data": {"invoice_no": "INV-1", "invoice_date": "2024-02-01", "supplier_name": "Acme", "amount": "99.90"},
		"batches": [
			{"batch_no": "B-1", "product_name": "Aspirin", "mfg_date": "2023-01-01", "quantity": 4, "num_of_ships": 3},
			{"batch_no": "B-2", "quantity": 1, "num_of_ships": 1}
		]
	}`

	tests := []struct {
		name           string
		body           string
		legacy         bool
		setupMocks     func(*testing.T, *mocks.MockInvoiceService)
		expectedStatus int
		expectedKey    string
		expectedMsg    string
	}{
		{
			name: "adds_invoice_and_batches",
			body: validBody,
			setupMocks: func(t *testing.T, m *mocks.MockInvoiceService) {
				m.EXPECT().Add(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, inv *domain.Invoice, batches []domain.Batch) error {
						assert.Equal(t, "INV-1", inv.InvoiceNo)
						assert.Equal(t, "2024-02-01", domain.FormatDate(inv.InvoiceDate))
						assert.True(t, decimal.RequireFromString("99.90").Equal(inv.Amount))
						require.Len(t, batches, 2)
						assert.Equal(t, "2023-01-01", domain.FormatDate(batches[0].MfgDate))
						assert.True(t, batches[0].ExpDate.IsZero())
						assert.Equal(t, 3, batches[0].NumOfShips)
						return nil
					})
			},
			expectedStatus: http.StatusCreated,
			expectedKey:    "message",
			expectedMsg:    "Invoice and batch(es) added successfully!",
		},
		{
			name:           "empty_body",
			body:           "",
			setupMocks:     func(*testing.T, *mocks.MockInvoiceService) {},
			expectedStatus: http.StatusBadRequest,
			expectedKey:    "error",
			expectedMsg:    "Sorry but 'data' argument value is missing!",
		},
		{
			name:           "empty_invoice_data",
			body:           `{"invoice_data": {}, "batches": [{"batch_no": "B-1"}]}`,
			setupMocks:     func(*testing.T, *mocks.MockInvoiceService) {},
			expectedStatus: http.StatusBadRequest,
			expectedKey:    "error",
			expectedMsg:    "Sorry but 'data' argument value is missing!",
		},
		{
			name: "no_batches",
			body: `{"invoice_data": {"invoice_no": "INV-1", "invoice_date": "2024-02-01"}, "batches": []}`,
			setupMocks: func(_ *testing.T, m *mocks.MockInvoiceService) {
				m.EXPECT().Add(gomock.Any(), gomock.Any(), gomock.Any()).Return(domain.ErrNoBatches)
			},
			expectedStatus: http.StatusBadRequest,
			expectedKey:    "error",
			expectedMsg:    "No data received. Cannot add invoice",
		},
		{
			name:           "unparsable_date",
			body:           `{"invoice_data": {"invoice_no": "INV-1", "invoice_date": "01/02/2024"}, "batches": [{"batch_no": "B-1"}]}`,
			setupMocks:     func(*testing.T, *mocks.MockInvoiceService) {},
			expectedStatus: http.StatusBadRequest,
			expectedKey:    "error",
		},
		{
			name:           "wrong_type_for_quantity",
			body:           `{"invoice_data": {"invoice_no": "INV-1", "invoice_date": "2024-02-01"}, "batches": [{"batch_no": "B-1", "quantity": "many"}]}`,
			setupMocks:     func(*testing.T, *mocks.MockInvoiceService) {},
			expectedStatus: http.StatusBadRequest,
			expectedKey:    "error",
		},
		{
			name: "duplicate_invoice",
			body: validBody,
			setupMocks: func(_ *testing.T, m *mocks.MockInvoiceService) {
				m.EXPECT().Add(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(domain.NewKeyError(domain.ErrDuplicateInvoice, "INV-1"))
			},
			expectedStatus: http.StatusConflict,
			expectedKey:    "error",
			expectedMsg:    "Cannot add Invoice. Duplicate 'invoice_no' 'INV-1'",
		},
		{
			name: "duplicate_batch",
			body: validBody,
			setupMocks: func(_ *testing.T, m *mocks.MockInvoiceService) {
				m.EXPECT().Add(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(domain.NewKeyError(domain.ErrDuplicateBatch, "B-2"))
			},
			expectedStatus: http.StatusConflict,
			expectedKey:    "error",
			expectedMsg:    "Cannot add batch. Duplicate 'batch_no' 'B-2'",
		},
		{
			name:   "legacy_duplicate_is_internal_status",
			body:   validBody,
			legacy: true,
			setupMocks: func(_ *testing.T, m *mocks.MockInvoiceService) {
				m.EXPECT().Add(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(domain.NewKeyError(domain.ErrDuplicateBatch, "B-2"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedKey:    "error",
			expectedMsg:    "Cannot add batch. Duplicate 'batch_no' 'B-2'",
		},
		{
			name: "store_failure",
			body: validBody,
			setupMocks: func(_ *testing.T, m *mocks.MockInvoiceService) {
				m.EXPECT().Add(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("deadlock detected"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedKey:    "error",
			expectedMsg:    "Error while updating the database. Probably internal.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockService := mocks.NewMockInvoiceService(ctrl)
			tt.setupMocks(t, mockService)
			handler := handlers.NewInvoiceHandler(mockService, tt.legacy, helpers.TestLogger())

			req := httptest.NewRequest(http.MethodPost, "/api/v1/invoice", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			handler.AddInvoice(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			body := decodeBody(t, w)
			require.Contains(t, body, tt.expectedKey)
			if tt.expectedMsg != "" {
				assert.Equal(t, tt.expectedMsg, body[tt.expectedKey])
			}
		})
	}
}

func TestInvoiceHandler_UpdateInvoice(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		setupMocks     func(*testing.T, *mocks.MockInvoiceService)
		expectedStatus int
		expectedKey    string
		expectedMsg    string
	}{
		{
			name: "applies_patch",
			body: `{"invoice_no": "INV-1", "amount": 12.5, "remarks": "paid"}`,
			setupMocks: func(t *testing.T, m *mocks.MockInvoiceService) {
				m.EXPECT().Update(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, data map[string]any) error {
						assert.Equal(t, json.Number("12.5"), data["amount"], "numbers stay exact")
						assert.Equal(t, "paid", data["remarks"])
						return nil
					})
			},
			expectedStatus: http.StatusOK,
			expectedKey:    "message",
			expectedMsg:    "Successful",
		},
		{
			name:           "empty_body",
			body:           "",
			setupMocks:     func(*testing.T, *mocks.MockInvoiceService) {},
			expectedStatus: http.StatusBadRequest,
			expectedKey:    "error",
			expectedMsg:    "no invoice data received",
		},
		{
			name: "empty_object",
			body: `{}`,
			setupMocks: func(_ *testing.T, m *mocks.MockInvoiceService) {
				m.EXPECT().Update(gomock.Any(), gomock.Any()).Return(domain.ErrMissingData)
			},
			expectedStatus: http.StatusBadRequest,
			expectedKey:    "error",
			expectedMsg:    "no invoice data received",
		},
		{
			name: "missing_invoice_no",
			body: `{"remarks": "x"}`,
			setupMocks: func(_ *testing.T, m *mocks.MockInvoiceService) {
				m.EXPECT().Update(gomock.Any(), gomock.Any()).
					Return(domain.NewKeyError(domain.ErrMissingData, "invoice_no"))
			},
			expectedStatus: http.StatusBadRequest,
			expectedKey:    "error",
			expectedMsg:    "no invoice_no given",
		},
		{
			name: "invalid_attribute",
			body: `{"invoice_no": "INV-1", "colour": "red"}`,
			setupMocks: func(_ *testing.T, m *mocks.MockInvoiceService) {
				m.EXPECT().Update(gomock.Any(), gomock.Any()).
					Return(domain.NewKeyError(domain.ErrInvalidAttribute, "colour"))
			},
			expectedStatus: http.StatusBadRequest,
			expectedKey:    "error",
			expectedMsg:    "Invalid attribute 'colour'",
		},
		{
			name: "unknown_invoice",
			body: `{"invoice_no": "INV-404", "remarks": "x"}`,
			setupMocks: func(_ *testing.T, m *mocks.MockInvoiceService) {
				m.EXPECT().Update(gomock.Any(), gomock.Any()).
					Return(domain.NewKeyError(domain.ErrInvoiceNotFound, "INV-404"))
			},
			expectedStatus: http.StatusNotFound,
			expectedKey:    "error",
			expectedMsg:    "no such invoice with invoice_no 'INV-404'",
		},
		{
			name: "store_failure",
			body: `{"invoice_no": "INV-1", "remarks": "x"}`,
			setupMocks: func(_ *testing.T, m *mocks.MockInvoiceService) {
				m.EXPECT().Update(gomock.Any(), gomock.Any()).Return(errors.New("tx aborted"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedKey:    "error",
			expectedMsg:    "Internal error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockService := mocks.NewMockInvoiceService(ctrl)
			tt.setupMocks(t, mockService)
			handler := handlers.NewInvoiceHandler(mockService, false, helpers.TestLogger())

			req := httptest.NewRequest(http.MethodPut, "/api/v1/invoice", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			handler.UpdateInvoice(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectedMsg, decodeBody(t, w)[tt.expectedKey])
		})
	}
}

func TestInvoiceHandler_DeleteInvoice(t *testing.T) {
	tests := []struct {
		name           string
		pathValue      string
		target         string
		body           string
		setupMocks     func(*mocks.MockInvoiceService)
		expectedStatus int
		expectedKey    string
		expectedMsg    string
	}{
		{
			name:      "deletes_by_path",
			pathValue: "INV-1",
			target:    "/api/v1/invoice/INV-1",
			setupMocks: func(m *mocks.MockInvoiceService) {
				m.EXPECT().Delete(gomock.Any(), "INV-1").Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedKey:    "message",
			expectedMsg:    "invoice deleted successfully",
		},
		{
			name:   "deletes_by_query",
			target: "/api/v1/invoice?invoice_no=INV-2",
			setupMocks: func(m *mocks.MockInvoiceService) {
				m.EXPECT().Delete(gomock.Any(), "INV-2").Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedKey:    "message",
			expectedMsg:    "invoice deleted successfully",
		},
		{
			name:   "deletes_by_body",
			target: "/api/v1/invoice",
			body:   `{"invoice_no": "INV-3"}`,
			setupMocks: func(m *mocks.MockInvoiceService) {
				m.EXPECT().Delete(gomock.Any(), "INV-3").Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedKey:    "message",
			expectedMsg:    "invoice deleted successfully",
		},
		{
			name:   "no_invoice_no",
			target: "/api/v1/invoice",
			setupMocks: func(m *mocks.MockInvoiceService) {
				m.EXPECT().Delete(gomock.Any(), "").
					Return(domain.NewKeyError(domain.ErrMissingData, "invoice_no"))
			},
			expectedStatus: http.StatusBadRequest,
			expectedKey:    "error",
			expectedMsg:    "no invoice_no given",
		},
		{
			name:      "unknown_invoice",
			pathValue: "INV-404",
			target:    "/api/v1/invoice/INV-404",
			setupMocks: func(m *mocks.MockInvoiceService) {
				m.EXPECT().Delete(gomock.Any(), "INV-404").
					Return(domain.NewKeyError(domain.ErrInvoiceNotFound, "INV-404"))
			},
			expectedStatus: http.StatusNotFound,
			expectedKey:    "error",
			expectedMsg:    "no such invoice with invoice_no 'INV-404'",
		},
		{
			name:      "store_failure",
			pathValue: "INV-1",
			target:    "/api/v1/invoice/INV-1",
			setupMocks: func(m *mocks.MockInvoiceService) {
				m.EXPECT().Delete(gomock.Any(), "INV-1").Return(errors.New("lock timeout"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedKey:    "error",
			expectedMsg:    "Internal Error while trying to delete",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockService := mocks.NewMockInvoiceService(ctrl)
			tt.setupMocks(mockService)
			handler := handlers.NewInvoiceHandler(mockService, false, helpers.TestLogger())

			req := httptest.NewRequest(http.MethodDelete, tt.target, strings.NewReader(tt.body))
			if tt.pathValue != "" {
				req.SetPathValue("invoice_no", tt.pathValue)
			}
			w := httptest.NewRecorder()

			handler.DeleteInvoice(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectedMsg, decodeBody(t, w)[tt.expectedKey])
		})
	}
}

func TestInvoiceHandler_BodyTooLarge(t *testing.T) {
	ctrl := gomock.NewController(t)
	handler := handlers.NewInvoiceHandler(mocks.NewMockInvoiceService(ctrl), false, helpers.TestLogger())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/v1/invoice", strings.NewReader(`{"invoice_no": "INV-1", "remarks": "a long remark"}`))
	req.Body = http.MaxBytesReader(w, req.Body, 10)

	handler.UpdateInvoice(w, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}
