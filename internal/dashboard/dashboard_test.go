package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/billing/internal/invoices"
)

type stubRepo struct {
	stats Stats
	err   error
	calls int
}

func (r *stubRepo) Snapshot(ctx context.Context) (Stats, error) {
	r.calls++
	return r.stats, r.err
}

func serve(repo RepositoryPort) *httptest.ResponseRecorder {
	h := NewHandler(slog.New(slog.NewTextHandler(io.Discard, nil)), NewService(repo))
	r := chi.NewRouter()
	r.Route("/api/dashboard", h.MountRoutes)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/dashboard/stats", nil))
	return rr
}

func TestEmptyStoreReportsZeroRevenue(t *testing.T) {
	rr := serve(&stubRepo{})

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{
		"total_products": 0,
		"total_clients": 0,
		"total_invoices": 0,
		"total_revenue": 0,
		"pending_invoices": 0,
		"low_stock": 0,
		"recent_invoices": []
	}`, rr.Body.String())
}

func TestStatsSerializesRecentInvoices(t *testing.T) {
	name := "Acme"
	repo := &stubRepo{stats: Stats{
		TotalProducts:   3,
		TotalInvoices:   2,
		TotalRevenue:    decimal.RequireFromString("1180.50"),
		PendingInvoices: 1,
		RecentInvoices: []invoices.Summary{
			{Invoice: invoices.Invoice{ID: 2, InvoiceNumber: "INV-0002"}, ClientName: &name},
			{Invoice: invoices.Invoice{ID: 1, InvoiceNumber: "INV-0001"}},
		},
	}}
	rr := serve(repo)

	require.Equal(t, http.StatusOK, rr.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, 1180.5, body["total_revenue"])
	recent := body["recent_invoices"].([]any)
	require.Len(t, recent, 2)
	assert.Equal(t, "Acme", recent[0].(map[string]any)["client_name"])
	assert.Nil(t, recent[1].(map[string]any)["client_name"])
}

func TestEveryCallRecomputes(t *testing.T) {
	repo := &stubRepo{}
	svc := NewService(repo)
	for i := 0; i < 3; i++ {
		_, err := svc.Stats(context.Background())
		require.NoError(t, err)
	}
	assert.Equal(t, 3, repo.calls)
}

func TestSnapshotFailureIs500(t *testing.T) {
	rr := serve(&stubRepo{err: errors.New("timeout")})
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"error":"Internal server error"}`, rr.Body.String())
}
