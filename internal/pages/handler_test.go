package pages

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/billing/internal/clients"
	"github.com/odyssey-erp/billing/internal/dashboard"
	"github.com/odyssey-erp/billing/internal/invoices"
	"github.com/odyssey-erp/billing/internal/products"
	"github.com/odyssey-erp/billing/internal/settings"
	"github.com/odyssey-erp/billing/internal/view"
)

type stubStats struct {
	stats dashboard.Stats
	err   error
}

func (s stubStats) Stats(context.Context) (dashboard.Stats, error) { return s.stats, s.err }

type stubInvoices struct {
	list  []invoices.Summary
	byID  map[int64]invoices.Detail
	items map[int64][]invoices.Item
	next  string
	err   error
}

func (s *stubInvoices) List(context.Context) ([]invoices.Summary, error) { return s.list, s.err }

func (s *stubInvoices) Header(_ context.Context, id int64) (invoices.Detail, error) {
	if s.err != nil {
		return invoices.Detail{}, s.err
	}
	d, ok := s.byID[id]
	if !ok {
		return invoices.Detail{}, invoices.ErrNotFound
	}
	return d, nil
}

func (s *stubInvoices) Items(_ context.Context, id int64) ([]invoices.Item, error) {
	return s.items[id], nil
}

func (s *stubInvoices) PeekNextNumber(context.Context) (string, error) { return s.next, s.err }

type stubProducts []products.Product

func (s stubProducts) List(context.Context) ([]products.Product, error) { return s, nil }

type stubClients []clients.Client

func (s stubClients) List(context.Context) ([]clients.Client, error) { return s, nil }

type stubSettings struct {
	cs  settings.CompanySettings
	err error
}

func (s stubSettings) Get(context.Context) (settings.CompanySettings, error) { return s.cs, s.err }

type stubPDF struct {
	html string
	err  error
}

func (s *stubPDF) RenderHTML(_ context.Context, html string) ([]byte, error) {
	s.html = html
	if s.err != nil {
		return nil, s.err
	}
	return []byte("%PDF-1.7"), nil
}

func strp(s string) *string { return &s }

func fixture() Deps {
	name := strp("Acme Traders")
	return Deps{
		Stats: stubStats{stats: dashboard.Stats{
			TotalProducts: 3, TotalClients: 2, TotalInvoices: 1,
			TotalRevenue:    decimal.RequireFromString("1180"),
			PendingInvoices: 1,
			RecentInvoices: []invoices.Summary{{
				Invoice:    invoices.Invoice{ID: 7, InvoiceNumber: "INV-0007", InvoiceDate: "2024-01-15", GrandTotal: decimal.RequireFromString("1180")},
				ClientName: name,
			}},
		}},
		Invoices: &stubInvoices{
			next: "INV-0008",
			list: []invoices.Summary{{
				Invoice:    invoices.Invoice{ID: 7, InvoiceNumber: "INV-0007", InvoiceDate: "2024-01-15", Status: "unpaid"},
				ClientName: name,
			}},
			byID: map[int64]invoices.Detail{7: {
				Invoice: invoices.Invoice{
					ID: 7, InvoiceNumber: "INV-0007", InvoiceDate: "2024-01-15",
					Subtotal:   decimal.RequireFromString("1000"),
					TotalTax:   decimal.RequireFromString("180"),
					GrandTotal: decimal.RequireFromString("1180"),
					Status:     "unpaid",
				},
				ClientName:  name,
				ClientState: strp("karnataka"),
			}},
			items: map[int64][]invoices.Item{7: {{
				ID: 1, InvoiceID: 7, Description: "Widget", HSNCode: "8471",
				Quantity: decimal.NewFromInt(10), Rate: decimal.NewFromInt(100),
				TaxRate: decimal.NewFromInt(18), Amount: decimal.NewFromInt(1000),
			}}},
		},
		Products: stubProducts{{ID: 1, Name: "Widget", HSNCode: "8471", UnitPrice: decimal.NewFromInt(100), StockQuantity: 4, TaxRate: decimal.NewFromInt(18)}},
		Clients:  stubClients{{ID: 2, Name: "Acme Traders", State: "Karnataka"}},
		Settings: stubSettings{cs: settings.CompanySettings{ID: 1, CompanyName: "Sharma Hardware", State: "Karnataka"}},
	}
}

func newRouter(t *testing.T, deps Deps) http.Handler {
	t.Helper()
	engine, err := view.NewEngine(nil)
	require.NoError(t, err)
	h := NewHandler(slog.New(slog.NewTextHandler(io.Discard, nil)), engine, deps)
	h.now = func() time.Time { return time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC) }
	r := chi.NewRouter()
	h.MountRoutes(r)
	return r
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
	return rr
}

func TestPagesRender(t *testing.T) {
	r := newRouter(t, fixture())
	cases := []struct {
		path string
		want []string
	}{
		{"/", []string{"Dashboard", "INV-0007", "Acme Traders", "₹1,180.00", "Sharma Hardware"}},
		{"/invoices", []string{"INV-0007", "Acme Traders"}},
		{"/create-invoice", []string{"INV-0008", "2024-03-01", "2024-03-31", "Widget", "Acme Traders"}},
		{"/products", []string{"Widget", "8471"}},
		{"/clients", []string{"Acme Traders", "Karnataka"}},
		{"/settings", []string{"Sharma Hardware"}},
	}
	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			rr := get(t, r, tc.path)
			require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
			assert.Contains(t, rr.Header().Get("Content-Type"), "text/html")
			for _, s := range tc.want {
				assert.Contains(t, rr.Body.String(), s)
			}
		})
	}
}

func TestInvoiceDetail(t *testing.T) {
	r := newRouter(t, fixture())
	rr := get(t, r, "/invoice/7")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	body := rr.Body.String()
	assert.Contains(t, body, "INV-0007")
	assert.Contains(t, body, "Widget")
	assert.Contains(t, body, "CGST")
	assert.Contains(t, body, "₹90.00")
	assert.Contains(t, body, "One Thousand One Hundred Eighty Rupees Only")
}

func TestInvoiceDetailInterstateShowsIGST(t *testing.T) {
	deps := fixture()
	deps.Settings = stubSettings{cs: settings.CompanySettings{CompanyName: "Sharma Hardware", State: "Maharashtra"}}
	rr := get(t, newRouter(t, deps), "/invoice/7")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "IGST")
	assert.NotContains(t, rr.Body.String(), "CGST")
}

func TestInvoiceDetailRedirects(t *testing.T) {
	r := newRouter(t, fixture())
	for _, path := range []string{"/invoice/99", "/invoice/abc", "/invoice/0"} {
		rr := get(t, r, path)
		assert.Equal(t, http.StatusFound, rr.Code, path)
		assert.Equal(t, "/invoices", rr.Header().Get("Location"), path)
	}
}

func TestInvoicePDF(t *testing.T) {
	deps := fixture()
	pdf := &stubPDF{}
	deps.PDF = pdf
	rr := get(t, newRouter(t, deps), "/invoice/7/pdf")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/pdf", rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Header().Get("Content-Disposition"), `filename="INV-0007.pdf"`)
	assert.Equal(t, "%PDF-1.7", rr.Body.String())
	assert.Contains(t, pdf.html, "TAX INVOICE")
	assert.NotContains(t, pdf.html, "/static/js/app.js")
}

func TestInvoicePDFFailures(t *testing.T) {
	rr := get(t, newRouter(t, fixture()), "/invoice/7/pdf")
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)

	deps := fixture()
	deps.PDF = &stubPDF{err: errors.New("gotenberg down")}
	rr = get(t, newRouter(t, deps), "/invoice/7/pdf")
	assert.Equal(t, http.StatusBadGateway, rr.Code)

	deps.PDF = &stubPDF{}
	rr = get(t, newRouter(t, deps), "/invoice/99/pdf")
	assert.Equal(t, http.StatusFound, rr.Code)
}

func TestPagesWithoutSettingsRow(t *testing.T) {
	deps := fixture()
	deps.Settings = stubSettings{err: settings.ErrNotFound}
	r := newRouter(t, deps)
	for _, path := range []string{"/", "/settings", "/invoice/7"} {
		rr := get(t, r, path)
		assert.Equal(t, http.StatusOK, rr.Code, path)
	}
}

func TestPageLoadFailure(t *testing.T) {
	deps := fixture()
	deps.Stats = stubStats{err: errors.New("connection refused")}
	deps.Invoices = &stubInvoices{err: errors.New("connection refused")}
	r := newRouter(t, deps)
	for _, path := range []string{"/", "/invoices", "/create-invoice", "/invoice/7"} {
		rr := get(t, r, path)
		assert.Equal(t, http.StatusInternalServerError, rr.Code, path)
		assert.NotContains(t, rr.Body.String(), "connection refused", path)
	}
}
