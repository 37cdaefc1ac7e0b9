package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/ammerola/invoices-be/internal/core/domain"
	"github.com/ammerola/invoices-be/internal/handlers"
	"github.com/ammerola/invoices-be/test/helpers"
	"github.com/ammerola/invoices-be/test/mocks"
)

func TestRegister(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockInvoiceService(ctrl)
	queue := mocks.NewMockExportQueue(ctrl)
	logger := helpers.TestLogger()

	mux := http.NewServeMux()
	handlers.Register(mux,
		handlers.NewInvoiceHandler(svc, false, logger),
		handlers.NewExportHandler(svc, queue, logger),
		handlers.NewHealthHandler(mocks.NewMockDatabase(ctrl), nil, nil, helpers.LoadTestConfig(), logger),
	)

	detail := helpers.CreateTestInvoice().Detail(nil)
	svc.EXPECT().Get(gomock.Any(), "INV 7").Return(&detail, nil)
	svc.EXPECT().List(gomock.Any()).Return([]domain.InvoiceView{}, nil)
	svc.EXPECT().Delete(gomock.Any(), "INV-8").Return(nil)
	queue.EXPECT().ExportStatus(gomock.Any(), "job-9").Return(&domain.ExportJob{TaskID: "job-9"}, nil)

	tests := []struct {
		name           string
		method         string
		target         string
		expectedStatus int
	}{
		{name: "detail_with_escaped_number", method: http.MethodGet, target: "/api/v1/invoice/INV%207", expectedStatus: http.StatusOK},
		{name: "list", method: http.MethodGet, target: "/api/v1/invoice", expectedStatus: http.StatusOK},
		{name: "delete_by_path", method: http.MethodDelete, target: "/api/v1/invoice/INV-8", expectedStatus: http.StatusOK},
		{name: "job_status", method: http.MethodGet, target: "/api/v1/export/jobs/job-9", expectedStatus: http.StatusOK},
		{name: "liveness", method: http.MethodGet, target: "/health", expectedStatus: http.StatusOK},
		{name: "wrong_method", method: http.MethodPatch, target: "/api/v1/invoice", expectedStatus: http.StatusMethodNotAllowed},
		{name: "unknown_path", method: http.MethodGet, target: "/api/v2/invoice", expectedStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(tt.method, tt.target, nil))
			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}
