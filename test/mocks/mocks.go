// test/mocks/mocks.go

// Package mocks contains generated mocks for the application's interfaces.
// To regenerate mocks, run `go generate ./test/mocks` from the root directory.
package mocks

//go:generate mockgen -source=../../internal/core/ports/invoice_repository.go -destination=mock_invoice_repository.go -package=mocks
//go:generate mockgen -source=../../internal/core/ports/invoice_service.go -destination=mock_invoice_service.go -package=mocks
//go:generate mockgen -source=../../internal/core/ports/database.go -destination=mock_database.go -package=mocks
//go:generate mockgen -source=../../internal/core/ports/cache.go -destination=mock_cache.go -package=mocks
//go:generate mockgen -source=../../internal/core/ports/storage.go -destination=mock_storage.go -package=mocks
//go:generate mockgen -source=../../internal/core/ports/export_queue.go -destination=mock_export_queue.go -package=mocks
