// test/benchmarks/helpers.go
package benchmarks

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ammerola/invoices-be/internal/core/domain"
)

// buildDetails returns n invoices with perInvoice batches each.
func buildDetails(n, perInvoice int) []domain.InvoiceDetail {
	created := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	details := make([]domain.InvoiceDetail, 0, n)

	for i := 0; i < n; i++ {
		inv := domain.Invoice{
			InvoiceNo:    fmt.Sprintf("BENCH-%05d", i),
			InvoiceDate:  created.AddDate(0, 0, i%365),
			SupplierName: "Benchmark Supplier",
			Amount:       decimal.New(int64(10000+i), -2),
			Remarks:      "benchmark",
			CreatedOn:    created,
		}

		batches := make([]domain.Batch, perInvoice)
		for j := range batches {
			batches[j] = domain.Batch{
				BatchNo:     fmt.Sprintf("BENCH-%05d-%02d", i, j),
				InvoiceNo:   inv.InvoiceNo,
				ProductName: "Paracetamol 500mg",
				MfgDate:     created,
				ExpDate:     created.AddDate(2, 0, 0),
				Quantity:    10 + j,
				NumOfShips:  2,
				Available:   (10 + j) * 2,
				CreatedOn:   created,
			}
		}
		details = append(details, inv.Detail(batches))
	}

	return details
}

// discardService accepts every write and serves nothing, so handler
// benchmarks measure decoding and conversion only.
type discardService struct{}

func (discardService) Get(context.Context, string) (*domain.InvoiceDetail, error) {
	return nil, domain.ErrInvoiceNotFound
}

func (discardService) List(context.Context) ([]domain.InvoiceView, error) { return nil, nil }

func (discardService) ListDetailed(context.Context) ([]domain.InvoiceDetail, error) { return nil, nil }

func (discardService) Add(context.Context, *domain.Invoice, []domain.Batch) error { return nil }

func (discardService) Update(ctx context.Context, data map[string]any) error {
	_, err := domain.NewInvoicePatch(data)
	return err
}

func (discardService) Delete(context.Context, string) error { return nil }
