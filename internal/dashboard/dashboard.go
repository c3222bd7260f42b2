// Package dashboard computes the headline numbers shown on the home page.
package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/odyssey-erp/billing/internal/invoices"
	"github.com/odyssey-erp/billing/internal/platform/db"
	"github.com/odyssey-erp/billing/internal/platform/httpx"
	"github.com/odyssey-erp/billing/internal/products"
)

// RecentLimit is how many invoices Stats.RecentInvoices carries.
const RecentLimit = 5

// PendingStatus is the exact status counted as pending.
const PendingStatus = "unpaid"

// Stats is one consistent snapshot of the store.
type Stats struct {
	TotalProducts   int64              `json:"total_products"`
	TotalClients    int64              `json:"total_clients"`
	TotalInvoices   int64              `json:"total_invoices"`
	TotalRevenue    decimal.Decimal    `json:"total_revenue"`
	PendingInvoices int64              `json:"pending_invoices"`
	LowStock        int64              `json:"low_stock"`
	RecentInvoices  []invoices.Summary `json:"recent_invoices"`
}

// RepositoryPort abstracts the snapshot query.
type RepositoryPort interface {
	Snapshot(ctx context.Context) (Stats, error)
}

// Repository reads aggregates from PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Snapshot runs every aggregate inside one read-only repeatable-read
// transaction so the counts and the recent list agree with each other.
func (r *Repository) Snapshot(ctx context.Context) (Stats, error) {
	var st Stats
	err := db.WithSnapshot(ctx, r.pool, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `SELECT
			(SELECT COUNT(*) FROM products),
			(SELECT COUNT(*) FROM clients),
			(SELECT COUNT(*) FROM invoices),
			(SELECT COALESCE(SUM(grand_total), 0) FROM invoices),
			(SELECT COUNT(*) FROM invoices WHERE status = $1),
			(SELECT COUNT(*) FROM products WHERE stock_quantity < $2)`,
			PendingStatus, products.LowStockThreshold,
		).Scan(&st.TotalProducts, &st.TotalClients, &st.TotalInvoices, &st.TotalRevenue, &st.PendingInvoices, &st.LowStock)
		if err != nil {
			return fmt.Errorf("select counts: %w", err)
		}

		rows, err := tx.Query(ctx, `SELECT i.id, i.invoice_number, i.client_id, i.invoice_date::text, i.due_date::text,
			i.subtotal, i.total_tax, i.grand_total, i.status, i.mode_of_transport, i.notes, i.created_at, c.name
			FROM invoices i LEFT JOIN clients c ON c.id = i.client_id
			ORDER BY i.id DESC LIMIT $1`, RecentLimit)
		if err != nil {
			return fmt.Errorf("query recent invoices: %w", err)
		}
		st.RecentInvoices, err = pgx.CollectRows(rows, invoices.ScanSummary)
		if err != nil {
			return fmt.Errorf("scan recent invoices: %w", err)
		}
		return nil
	})
	if err != nil {
		return Stats{}, fmt.Errorf("dashboard snapshot: %w", err)
	}
	return st, nil
}

// Service recomputes the stats on every call.
type Service struct {
	repo RepositoryPort
}

func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

func (s *Service) Stats(ctx context.Context) (Stats, error) {
	st, err := s.repo.Snapshot(ctx)
	if err != nil {
		return Stats{}, err
	}
	if st.RecentInvoices == nil {
		st.RecentInvoices = []invoices.Summary{}
	}
	return st, nil
}

type Handler struct {
	logger  *slog.Logger
	service *Service
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/stats", h.stats)
}

func (h *Handler) stats(w http.ResponseWriter, r *http.Request) {
	st, err := h.service.Stats(r.Context())
	if err != nil {
		httpx.Fail(h.logger, w, r, "dashboard stats", err)
		return
	}
	httpx.JSON(w, http.StatusOK, st)
}
