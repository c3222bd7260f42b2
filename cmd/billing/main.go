package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/odyssey-erp/billing/internal/app"
	"github.com/odyssey-erp/billing/internal/clients"
	"github.com/odyssey-erp/billing/internal/dashboard"
	"github.com/odyssey-erp/billing/internal/invoices"
	"github.com/odyssey-erp/billing/internal/observability"
	"github.com/odyssey-erp/billing/internal/pages"
	"github.com/odyssey-erp/billing/internal/platform/db"
	"github.com/odyssey-erp/billing/internal/platform/lock"
	"github.com/odyssey-erp/billing/internal/products"
	"github.com/odyssey-erp/billing/internal/settings"
	"github.com/odyssey-erp/billing/internal/view"
	"github.com/odyssey-erp/billing/report"
)

func main() {
	migrateOnly := flag.Bool("migrate-only", false, "apply database migrations and exit")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Default().Warn("load .env", slog.Any("error", err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	if err := db.Migrate(cfg.PGDSN, logger); err != nil {
		logger.Error("migrate", slog.Any("error", err))
		os.Exit(1)
	}
	if *migrateOnly {
		return
	}

	dbpool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	var locker invoices.Locker
	if cfg.RedisAddr != "" {
		redisClient, err := lock.NewClient(ctx, cfg.RedisAddr)
		if err != nil {
			logger.Error("connect redis", slog.Any("error", err))
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Warn("redis close", slog.Any("error", err))
			}
		}()
		locker = lock.NewLocker(redisClient, lock.Options{TTL: cfg.InvoiceLockTTL})
	} else {
		logger.Info("REDIS_ADDR not set, invoice numbering relies on the unique constraint")
	}

	templates, err := view.NewEngine(nil)
	if err != nil {
		logger.Error("parse templates", slog.Any("error", err))
		os.Exit(1)
	}

	metrics := observability.NewMetrics()
	metrics.RegisterPool(dbpool.Stat)

	productService := products.NewService(products.NewRepository(dbpool))
	clientService := clients.NewService(clients.NewRepository(dbpool))
	settingsService := settings.NewService(settings.NewRepository(dbpool))
	invoiceService := invoices.NewService(invoices.NewRepository(dbpool), locker, logger)
	dashboardService := dashboard.NewService(dashboard.NewRepository(dbpool))

	pageDeps := pages.Deps{
		Stats:    dashboardService,
		Invoices: invoiceService,
		Products: productService,
		Clients:  clientService,
		Settings: settingsService,
	}
	var reportHandler *report.Handler
	if cfg.GotenbergURL != "" {
		reportClient := report.NewClient(cfg.GotenbergURL)
		pageDeps.PDF = reportClient
		reportHandler = report.NewHandler(reportClient, logger)
	}

	router := app.NewRouter(app.RouterParams{
		Logger:           logger,
		Config:           cfg,
		ProductsHandler:  products.NewHandler(logger, productService),
		ClientsHandler:   clients.NewHandler(logger, clientService),
		InvoicesHandler:  invoices.NewHandler(logger, invoiceService).WithRecorder(metrics),
		SettingsHandler:  settings.NewHandler(logger, settingsService),
		DashboardHandler: dashboard.NewHandler(logger, dashboardService),
		PagesHandler:     pages.NewHandler(logger, templates, pageDeps),
		ReportHandler:    reportHandler,
		Metrics:          metrics,
		DB:               dbpool,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
