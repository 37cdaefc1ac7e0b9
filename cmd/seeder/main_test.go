package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerator_Next(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	gen := newGenerator(42, now)

	seenInvoices := map[string]bool{}
	seenBatches := map[string]bool{}

	for i := 0; i < 50; i++ {
		inv, batches := gen.next(3)

		require.NoError(t, inv.Validate())
		assert.False(t, seenInvoices[inv.InvoiceNo], "duplicate invoice %s", inv.InvoiceNo)
		seenInvoices[inv.InvoiceNo] = true
		assert.True(t, inv.Amount.IsPositive())
		assert.False(t, inv.InvoiceDate.After(now))

		require.NotEmpty(t, batches)
		assert.LessOrEqual(t, len(batches), 3)
		for _, b := range batches {
			require.NoError(t, b.Validate())
			assert.False(t, seenBatches[b.BatchNo], "duplicate batch %s", b.BatchNo)
			seenBatches[b.BatchNo] = true
			assert.True(t, b.ExpDate.After(b.MfgDate))
			assert.Positive(t, b.Quantity)
			assert.Positive(t, b.NumOfShips)
		}
	}
}

func TestGenerator_TagsDifferPerRun(t *testing.T) {
	now := time.Now().UTC()
	a, _ := newGenerator(1, now).next(1)
	b, _ := newGenerator(1, now).next(1)

	assert.NotEqual(t, a.InvoiceNo, b.InvoiceNo)
	assert.Equal(t, a.SupplierName, b.SupplierName, "same seed yields same content")
}
