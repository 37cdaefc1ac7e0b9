package handlers

import "net/http"

const apiV1 = "/api/v1"

// Register mounts every endpoint on mux using Go 1.22 method patterns.
func Register(mux *http.ServeMux, invoices *InvoiceHandler, exports *ExportHandler, health *HealthHandler) {
	mux.HandleFunc("GET /health", health.Health)
	mux.HandleFunc("GET /ready", health.Readiness)

	mux.HandleFunc("GET "+apiV1+"/invoice", invoices.ListInvoices)
	mux.HandleFunc("GET "+apiV1+"/invoice/{invoice_no}", invoices.GetInvoice)
	mux.HandleFunc("POST "+apiV1+"/invoice", invoices.AddInvoice)
	mux.HandleFunc("PUT "+apiV1+"/invoice", invoices.UpdateInvoice)
	mux.HandleFunc("DELETE "+apiV1+"/invoice", invoices.DeleteInvoice)
	mux.HandleFunc("DELETE "+apiV1+"/invoice/{invoice_no}", invoices.DeleteInvoice)

	mux.HandleFunc("GET "+apiV1+"/export/excel", exports.ExportExcel)
	mux.HandleFunc("POST "+apiV1+"/export/jobs", exports.CreateExportJob)
	mux.HandleFunc("GET "+apiV1+"/export/jobs/{task_id}", exports.ExportJobStatus)
}
