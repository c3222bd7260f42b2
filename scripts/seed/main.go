// Command seed fills an empty database with demo products, clients, company
// settings and a first invoice so the pages have something to show.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/odyssey-erp/billing/internal/app"
	"github.com/odyssey-erp/billing/internal/clients"
	"github.com/odyssey-erp/billing/internal/dashboard"
	"github.com/odyssey-erp/billing/internal/invoices"
	"github.com/odyssey-erp/billing/internal/platform/db"
	"github.com/odyssey-erp/billing/internal/products"
	"github.com/odyssey-erp/billing/internal/settings"
)

func main() {
	force := flag.Bool("force", false, "seed even when the store already has products or clients")
	flag.Parse()

	_ = godotenv.Load()
	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}
	logger := app.NewLogger(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := db.Migrate(cfg.PGDSN, logger); err != nil {
		logger.Error("migrate", slog.Any("error", err))
		os.Exit(1)
	}
	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	stats, err := dashboard.NewService(dashboard.NewRepository(pool)).Stats(ctx)
	if err != nil {
		logger.Error("read store", slog.Any("error", err))
		os.Exit(1)
	}
	if !*force && (stats.TotalProducts > 0 || stats.TotalClients > 0) {
		logger.Info("store already has data, nothing to seed", slog.Int64("products", stats.TotalProducts), slog.Int64("clients", stats.TotalClients))
		return
	}

	s := seeder{
		products: products.NewService(products.NewRepository(pool)),
		clients:  clients.NewService(clients.NewRepository(pool)),
		settings: settings.NewService(settings.NewRepository(pool)),
		invoices: invoices.NewService(invoices.NewRepository(pool), nil, logger),
	}
	if err := s.run(ctx); err != nil {
		logger.Error("seed", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("seed complete")
}

type seeder struct {
	products *products.Service
	clients  *clients.Service
	settings *settings.Service
	invoices *invoices.Service
}

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func i64(v int64) *int64 { return &v }

func str(s string) *string { return &s }

func (s seeder) run(ctx context.Context) error {
	err := s.settings.Update(ctx, settings.SettingsForm{
		CompanyName:        "Sharma Hardware & Electricals",
		Address:            str("12 MG Road"),
		City:               str("Bengaluru"),
		State:              str("Karnataka"),
		Pincode:            str("560001"),
		GSTIN:              str("29ABCDE1234F1Z5"),
		Phone:              str("+91 80 4000 1234"),
		Email:              str("accounts@sharmahardware.example"),
		TermsAndConditions: str("Goods once sold will not be taken back.\nPayment due within 30 days."),
		BankingDetails:     str("HDFC Bank, MG Road\nA/C 50200012345678\nIFSC HDFC0000123"),
	})
	if err != nil {
		return fmt.Errorf("settings: %w", err)
	}

	catalogue := []products.ProductForm{
		{Name: "LED Bulb 9W", HSNCode: "8539", UnitPrice: dec("120"), StockQuantity: i64(250), TaxRate: dec("12"), Category: "Lighting"},
		{Name: "Copper Wire 1.5mm (90m)", HSNCode: "8544", UnitPrice: dec("1850"), StockQuantity: i64(40), TaxRate: dec("18"), Category: "Wiring"},
		{Name: "Modular Switch 6A", HSNCode: "8536", UnitPrice: dec("65.50"), StockQuantity: i64(8), Category: "Switchgear"},
	}
	productIDs := make([]int64, 0, len(catalogue))
	for _, form := range catalogue {
		id, err := s.products.Create(ctx, form)
		if err != nil {
			return fmt.Errorf("product %q: %w", form.Name, err)
		}
		productIDs = append(productIDs, id)
	}

	customers := []clients.ClientForm{
		{Name: "Kumar Constructions", Email: "billing@kumar.example", City: "Mysuru", State: "Karnataka", Pincode: "570001", GSTIN: "29AAACK1234M1Z2"},
		{Name: "Patil Electric Works", Email: "patil@example.com", City: "Pune", State: "Maharashtra", Pincode: "411001"},
	}
	var firstClient int64
	for i, form := range customers {
		id, err := s.clients.Create(ctx, form)
		if err != nil {
			return fmt.Errorf("client %q: %w", form.Name, err)
		}
		if i == 0 {
			firstClient = id
		}
	}

	lines := []invoices.CalculateItem{
		{Quantity: dec("10"), Rate: dec("120"), TaxRate: dec("12")},
		{Quantity: dec("2"), Rate: dec("1850"), TaxRate: dec("18")},
	}
	totals, err := invoices.Calculate(invoices.CalculateRequest{Items: lines})
	if err != nil {
		return err
	}
	_, err = s.invoices.Create(ctx, invoices.CreateRequest{
		ClientID:    &firstClient,
		InvoiceDate: time.Now().Format(time.DateOnly),
		Subtotal:    &totals.Subtotal,
		TotalTax:    &totals.TotalTax,
		GrandTotal:  &totals.GrandTotal,
		Items: []invoices.ItemRequest{
			{ProductID: &productIDs[0], Description: catalogue[0].Name, HSNCode: catalogue[0].HSNCode, Quantity: lines[0].Quantity, Rate: lines[0].Rate, TaxRate: lines[0].TaxRate, Amount: &totals.Items[0].Total},
			{ProductID: &productIDs[1], Description: catalogue[1].Name, HSNCode: catalogue[1].HSNCode, Quantity: lines[1].Quantity, Rate: lines[1].Rate, TaxRate: lines[1].TaxRate, Amount: &totals.Items[1].Total},
		},
	})
	if err != nil {
		return fmt.Errorf("invoice: %w", err)
	}
	return nil
}
