package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ammerola/invoices-be/internal/adapters/db"
	"github.com/ammerola/invoices-be/internal/core/domain"
	"github.com/ammerola/invoices-be/internal/core/services"
	"github.com/ammerola/invoices-be/internal/pkg/config"
	"github.com/ammerola/invoices-be/internal/pkg/logger"
)

var (
	suppliers = []string{
		"Acme Pharma", "Northwind Medical", "Helix Labs", "Meridian Health Supply",
		"Bluebird Generics", "Cobalt Biotech", "Summit Distributors",
	}
	products = []string{
		"Paracetamol 500mg", "Amoxicillin 250mg", "Ibuprofen 400mg", "Cetirizine 10mg",
		"Metformin 850mg", "Omeprazole 20mg", "Azithromycin 500mg", "Vitamin D3 1000IU",
		"Salbutamol Inhaler", "Insulin Glargine",
	}
	remarks = []string{"", "", "first delivery", "partial shipment", "paid in advance", "awaiting QA release"}
)

// generator builds synthetic invoices. Invoice and batch numbers carry a
// per-run tag so repeated runs never collide.
type generator struct {
	rnd  *rand.Rand
	tag  string
	now  time.Time
	seq  int
	bseq int
}

func newGenerator(seed int64, now time.Time) *generator {
	return &generator{
		rnd: rand.New(rand.NewSource(seed)),
		tag: strings.ToUpper(uuid.New().String()[:8]),
		now: now,
	}
}

func (g *generator) next(maxBatches int) (*domain.Invoice, []domain.Batch) {
	g.seq++
	invoiceDate := g.now.AddDate(0, 0, -g.rnd.Intn(365)).Truncate(24 * time.Hour)

	invoice := &domain.Invoice{
		InvoiceNo:    fmt.Sprintf("INV-%s-%04d", g.tag, g.seq),
		InvoiceDate:  invoiceDate,
		SupplierName: suppliers[g.rnd.Intn(len(suppliers))],
		Remarks:      remarks[g.rnd.Intn(len(remarks))],
	}

	count := 1 + g.rnd.Intn(maxBatches)
	batches := make([]domain.Batch, 0, count)
	total := decimal.Zero
	for i := 0; i < count; i++ {
		g.bseq++
		mfg := invoiceDate.AddDate(0, -1-g.rnd.Intn(6), 0)
		b := domain.Batch{
			BatchNo:     fmt.Sprintf("B-%s-%05d", g.tag, g.bseq),
			ProductName: products[g.rnd.Intn(len(products))],
			MfgDate:     mfg,
			ExpDate:     mfg.AddDate(1+g.rnd.Intn(3), 0, 0),
			Quantity:    10 * (1 + g.rnd.Intn(50)),
			NumOfShips:  1 + g.rnd.Intn(4),
		}
		unit := decimal.New(int64(50+g.rnd.Intn(950)), -2)
		total = total.Add(unit.Mul(decimal.NewFromInt(int64(b.Quantity * b.NumOfShips))))
		batches = append(batches, b)
	}
	invoice.Amount = total.Round(2)

	return invoice, batches
}

func main() {
	var (
		count      = flag.Int("n", 25, "Number of invoices to create")
		maxBatches = flag.Int("batches", 4, "Maximum batches per invoice")
		seed       = flag.Int64("seed", time.Now().UnixNano(), "Random seed")
		dryRun     = flag.Bool("dry-run", false, "Preview generated invoices without writing them")
	)
	flag.Parse()

	slogger := logger.SetupLogger("info", "json").Logger

	if *count <= 0 || *maxBatches <= 0 {
		slogger.Error("-n and -batches must be positive")
		os.Exit(2)
	}

	cfg, err := config.Load(slogger)
	if err != nil {
		slogger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}
	slogger = logger.SetupLogger(cfg.App.LogLevel, cfg.App.LogFormat).Logger

	gen := newGenerator(*seed, time.Now().UTC())

	if *dryRun {
		for i := 0; i < *count; i++ {
			inv, batches := gen.next(*maxBatches)
			fmt.Printf("%s  %s  %-24s %12s  %d batch(es)\n",
				inv.InvoiceNo, domain.FormatDate(inv.InvoiceDate), inv.SupplierName, inv.Amount.StringFixed(2), len(batches))
		}
		fmt.Println("\n[DRY RUN] No changes were made to the database")
		return
	}

	ctx := context.Background()
	database, err := db.NewDatabase(ctx, &db.Config{
		Host:               cfg.Database.Host,
		Port:               cfg.Database.Port,
		User:               cfg.Database.User,
		Password:           cfg.Database.Password,
		Database:           cfg.Database.Name,
		SSLMode:            cfg.Database.SSLMode,
		MaxConnections:     2,
		MinConnections:     1,
		ConnectTimeout:     cfg.Database.ConnectTimeout,
		StatementCacheMode: cfg.Database.StatementCacheMode,
	}, slogger)
	if err != nil {
		slogger.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.Close()

	// Seeding goes around the API, so the read cache is left to expire.
	svc := services.NewInvoiceService(
		db.NewInvoiceRepository(database, slogger),
		db.NewBatchRepository(database, slogger),
		database,
		nil,
		slogger,
	)

	created, totalBatches, failed := 0, 0, 0
	for i := 0; i < *count; i++ {
		inv, batches := gen.next(*maxBatches)

		if err := svc.Add(ctx, inv, batches); err != nil {
			failed++
			level := slog.LevelError
			if errors.Is(err, domain.ErrDuplicateInvoice) || errors.Is(err, domain.ErrDuplicateBatch) {
				level = slog.LevelWarn
			}
			slogger.Log(ctx, level, "failed to seed invoice",
				slog.String("invoice_no", inv.InvoiceNo),
				slog.String("error", err.Error()))
			continue
		}

		created++
		totalBatches += len(batches)
		fmt.Printf("PROGRESS: %d/%d %s (%d batches)\n", i+1, *count, inv.InvoiceNo, len(batches))
	}

	slogger.Info("seed operation completed",
		slog.String("tag", gen.tag),
		slog.Int("invoices_created", created),
		slog.Int("batches_created", totalBatches),
		slog.Int("failed", failed))

	if failed > 0 {
		os.Exit(1)
	}
}
