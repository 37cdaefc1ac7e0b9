//go:build integration
// +build integration

package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/ammerola/invoices-be/internal/adapters/db"
	redis_a "github.com/ammerola/invoices-be/internal/adapters/redis_adapter"
	"github.com/ammerola/invoices-be/internal/core/domain"
	"github.com/ammerola/invoices-be/internal/core/ports"
	"github.com/ammerola/invoices-be/internal/core/services"
	"github.com/ammerola/invoices-be/internal/handlers"
	"github.com/ammerola/invoices-be/internal/handlers/middleware"
	"github.com/ammerola/invoices-be/test/helpers"
)

// noQueue stands in for asynq; job endpoints report every id as unknown.
type noQueue struct{}

func (noQueue) EnqueueExport(context.Context, domain.ExportRequest) (*domain.ExportJob, error) {
	return nil, fmt.Errorf("export queue disabled")
}

func (noQueue) ExportStatus(context.Context, string) (*domain.ExportJob, error) {
	return nil, ports.ErrJobNotFound
}

type InvoiceE2ESuite struct {
	suite.Suite
	server    *httptest.Server
	client    *http.Client
	baseURL   string
	testDB    *helpers.TestDB
	testRedis *helpers.TestRedis
}

func (s *InvoiceE2ESuite) SetupSuite() {
	s.testDB = helpers.SetupTestDB(s.T())
	s.testRedis = helpers.SetupTestRedis(s.T())

	s.server = s.startTestServer()
	s.client = &http.Client{Timeout: 10 * time.Second}
	s.baseURL = s.server.URL + "/api/v1"
}

func (s *InvoiceE2ESuite) TearDownSuite() {
	s.server.Close()
}

func (s *InvoiceE2ESuite) SetupTest() {
	helpers.TruncateAllTables(s.T(), s.testDB.PgxPool)
	s.testRedis.Server.FlushAll()
}

func (s *InvoiceE2ESuite) TestCompleteInvoiceWorkflow() {
	// 1. Add an invoice with two batches
	addReq := map[string]interface{}{
		"invoice_data": map[string]interface{}{
			"invoice_no":    "E2E-001",
			"invoice_date":  "2024-03-01",
			"supplier_name": "Acme Pharma",
			"amount":        "1500.25",
			"remarks":       "created by e2e",
		},
		"batches": []map[string]interface{}{
			{"batch_no": "E2E-B1", "product_name": "Aspirin", "mfg_date": "2024-01-01", "exp_date": "2026-01-01", "quantity": 10, "num_of_ships": 3},
			{"batch_no": "E2E-B2", "product_name": "Ibuprofen", "quantity": 4, "num_of_ships": 2},
		},
	}

	resp := s.makeRequest(http.MethodPost, "/invoice", addReq)
	s.Equal(http.StatusCreated, resp.StatusCode)
	var msg map[string]string
	s.decodeResponse(resp, &msg)
	s.Equal("Invoice and batch(es) added successfully!", msg["message"])

	// 2. Read the detail view
	resp = s.makeRequest(http.MethodGet, "/invoice/E2E-001", nil)
	s.Equal(http.StatusOK, resp.StatusCode)

	var detail domain.InvoiceDetail
	s.decodeResponse(resp, &detail)
	s.Equal("2024-03-01", detail.InvoiceDate)
	s.Equal("1500.25", detail.Amount.StringFixed(2))
	s.Require().Len(detail.Batches, 2)
	available := map[string]int{}
	for _, b := range detail.Batches {
		available[b.BatchNo] = b.Available
		s.Equal("E2E-001", b.InvoiceNo)
	}
	s.Equal(30, available["E2E-B1"])
	s.Equal(8, available["E2E-B2"])

	// 3. Update through the attribute map; the cached detail must not survive
	resp = s.makeRequest(http.MethodPut, "/invoice", map[string]interface{}{
		"invoice_no": "E2E-001",
		"remarks":    "paid",
		"amount":     99.5,
	})
	s.Equal(http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = s.makeRequest(http.MethodGet, "/invoice/E2E-001", nil)
	s.decodeResponse(resp, &detail)
	s.Equal("paid", detail.Remarks)
	s.Equal("99.50", detail.Amount.StringFixed(2))

	// 4. Unknown attributes are rejected
	resp = s.makeRequest(http.MethodPut, "/invoice", map[string]interface{}{
		"invoice_no": "E2E-001",
		"colour":     "red",
	})
	s.Equal(http.StatusBadRequest, resp.StatusCode)
	s.decodeResponse(resp, &msg)
	s.Equal("Invalid attribute 'colour'", msg["error"])

	// 5. List view
	resp = s.makeRequest(http.MethodGet, "/invoice", nil)
	s.Equal(http.StatusOK, resp.StatusCode)
	var list []domain.InvoiceView
	s.decodeResponse(resp, &list)
	s.Require().Len(list, 1)
	s.Equal("E2E-001", list[0].InvoiceNo)

	// 6. Excel export
	resp = s.makeRequest(http.MethodGet, "/export/excel", nil)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal("application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", resp.Header.Get("Content-Type"))
	resp.Body.Close()

	// 7. Delete cascades to the batches
	resp = s.makeRequest(http.MethodDelete, "/invoice/E2E-001", nil)
	s.Equal(http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	var batches int
	err := s.testDB.PgxPool.QueryRow(context.Background(),
		"SELECT count(*) FROM batches WHERE invoice_no = $1", "E2E-001").Scan(&batches)
	s.NoError(err)
	s.Zero(batches)

	// 8. The invoice is gone
	resp = s.makeRequest(http.MethodGet, "/invoice/E2E-001", nil)
	s.Equal(http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	resp = s.makeRequest(http.MethodDelete, "/invoice?invoice_no=E2E-001", nil)
	s.Equal(http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func (s *InvoiceE2ESuite) TestAddIsAtomic() {
	first := map[string]interface{}{
		"invoice_data": map[string]interface{}{"invoice_no": "ATOM-1", "invoice_date": "2024-01-01"},
		"batches":      []map[string]interface{}{{"batch_no": "ATOM-B1", "quantity": 1, "num_of_ships": 1}},
	}
	resp := s.makeRequest(http.MethodPost, "/invoice", first)
	s.Equal(http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	// The second batch collides, so nothing from this request may persist.
	second := map[string]interface{}{
		"invoice_data": map[string]interface{}{"invoice_no": "ATOM-2", "invoice_date": "2024-01-02"},
		"batches": []map[string]interface{}{
			{"batch_no": "ATOM-B2", "quantity": 1, "num_of_ships": 1},
			{"batch_no": "ATOM-B1", "quantity": 1, "num_of_ships": 1},
		},
	}
	resp = s.makeRequest(http.MethodPost, "/invoice", second)
	s.Equal(http.StatusConflict, resp.StatusCode)
	var msg map[string]string
	s.decodeResponse(resp, &msg)
	s.Equal("Cannot add batch. Duplicate 'batch_no' 'ATOM-B1'", msg["error"])

	resp = s.makeRequest(http.MethodGet, "/invoice/ATOM-2", nil)
	s.Equal(http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	var count int
	err := s.testDB.PgxPool.QueryRow(context.Background(),
		"SELECT count(*) FROM batches WHERE batch_no = $1", "ATOM-B2").Scan(&count)
	s.NoError(err)
	s.Zero(count)

	resp = s.makeRequest(http.MethodPost, "/invoice", first)
	s.Equal(http.StatusConflict, resp.StatusCode)
	s.decodeResponse(resp, &msg)
	s.Equal("Cannot add Invoice. Duplicate 'invoice_no' 'ATOM-1'", msg["error"])
}

func (s *InvoiceE2ESuite) TestConcurrentAdds() {
	var wg sync.WaitGroup
	codes := make([]int, 10)

	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			req := map[string]interface{}{
				"invoice_data": map[string]interface{}{
					"invoice_no":   fmt.Sprintf("CONC-%03d", idx),
					"invoice_date": "2024-05-01",
				},
				"batches": []map[string]interface{}{
					{"batch_no": fmt.Sprintf("CONC-B-%03d", idx), "quantity": idx + 1, "num_of_ships": 1},
				},
			}
			resp := s.makeRequest(http.MethodPost, "/invoice", req)
			codes[idx] = resp.StatusCode
			resp.Body.Close()
		}(i)
	}
	wg.Wait()

	for i, code := range codes {
		s.Equal(http.StatusCreated, code, "request %d", i)
	}

	resp := s.makeRequest(http.MethodGet, "/invoice", nil)
	var list []domain.InvoiceView
	s.decodeResponse(resp, &list)
	s.Len(list, 10)
}

func (s *InvoiceE2ESuite) TestExportJobUnknown() {
	resp := s.makeRequest(http.MethodGet, "/export/jobs/does-not-exist", nil)
	s.Equal(http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func (s *InvoiceE2ESuite) TestHealthCheck() {
	resp, err := s.client.Get(s.server.URL + "/health")
	s.Require().NoError(err)
	s.Equal(http.StatusOK, resp.StatusCode)

	var health map[string]interface{}
	s.decodeResponse(resp, &health)
	s.Equal("healthy", health["status"])

	resp, err = s.client.Get(s.server.URL + "/ready")
	s.Require().NoError(err)
	s.Equal(http.StatusOK, resp.StatusCode)

	var ready handlers.ReadinessStatus
	s.decodeResponse(resp, &ready)
	s.True(ready.Ready)
	s.Contains(ready.Services, "database")
	s.Contains(ready.Services, "cache")
}

// Helper methods

func (s *InvoiceE2ESuite) startTestServer() *httptest.Server {
	logger := helpers.TestLogger()
	cfg := helpers.LoadTestConfig()

	cache := redis_a.NewCache(s.testRedis.Client, time.Minute, logger)
	svc := services.NewInvoiceService(
		db.NewInvoiceRepository(s.testDB.Database, logger),
		db.NewBatchRepository(s.testDB.Database, logger),
		s.testDB.Database,
		cache,
		logger,
	)

	mux := http.NewServeMux()
	handlers.Register(mux,
		handlers.NewInvoiceHandler(svc, false, logger),
		handlers.NewExportHandler(svc, noQueue{}, logger),
		handlers.NewHealthHandler(s.testDB.Database, cache, nil, cfg, logger),
	)

	var handler http.Handler = mux
	handler = middleware.MaxBodySize(cfg.Security.MaxBodyBytes)(handler)
	handler = middleware.Recovery(logger)(handler)
	handler = middleware.Logger(logger)(handler)
	handler = middleware.RequestID(handler)

	return httptest.NewServer(handler)
}

func (s *InvoiceE2ESuite) makeRequest(method, path string, body interface{}) *http.Response {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		s.Require().NoError(err)
		reqBody = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequest(method, s.baseURL+path, reqBody)
	s.Require().NoError(err)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.client.Do(req)
	s.Require().NoError(err)

	return resp
}

func (s *InvoiceE2ESuite) decodeResponse(resp *http.Response, v interface{}) {
	defer resp.Body.Close()
	s.NoError(json.NewDecoder(resp.Body).Decode(v))
}

func TestInvoiceE2ESuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping E2E tests in short mode")
	}
	suite.Run(t, new(InvoiceE2ESuite))
}
