// Package pages serves the server-rendered HTML screens. Every page reads
// through the same services as the JSON API; the forms post back to the API
// from the browser.
package pages

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"github.com/odyssey-erp/billing/internal/clients"
	"github.com/odyssey-erp/billing/internal/dashboard"
	"github.com/odyssey-erp/billing/internal/invoices"
	"github.com/odyssey-erp/billing/internal/platform/httpx"
	"github.com/odyssey-erp/billing/internal/products"
	"github.com/odyssey-erp/billing/internal/settings"
	"github.com/odyssey-erp/billing/internal/shared"
	"github.com/odyssey-erp/billing/internal/view"
)

// DefaultDueDays is how far after today the create form proposes a due date.
const DefaultDueDays = 30

// StatsReader provides dashboard figures.
type StatsReader interface {
	Stats(ctx context.Context) (dashboard.Stats, error)
}

// InvoiceReader is the read side of the invoice service.
type InvoiceReader interface {
	List(ctx context.Context) ([]invoices.Summary, error)
	Header(ctx context.Context, id int64) (invoices.Detail, error)
	Items(ctx context.Context, id int64) ([]invoices.Item, error)
	PeekNextNumber(ctx context.Context) (string, error)
}

// ProductLister lists products.
type ProductLister interface {
	List(ctx context.Context) ([]products.Product, error)
}

// ClientLister lists clients.
type ClientLister interface {
	List(ctx context.Context) ([]clients.Client, error)
}

// SettingsReader loads company settings.
type SettingsReader interface {
	Get(ctx context.Context) (settings.CompanySettings, error)
}

// PDFRenderer converts an HTML document to PDF.
type PDFRenderer interface {
	RenderHTML(ctx context.Context, html string) ([]byte, error)
}

// Deps groups the readers the pages depend on.
type Deps struct {
	Stats    StatsReader
	Invoices InvoiceReader
	Products ProductLister
	Clients  ClientLister
	Settings SettingsReader
	// PDF is optional; without it the PDF route answers 503.
	PDF PDFRenderer
}

// Handler renders HTML pages.
type Handler struct {
	logger    *slog.Logger
	templates *view.Engine
	deps      Deps
	now       func() time.Time
}

// NewHandler constructs the page handler.
func NewHandler(logger *slog.Logger, templates *view.Engine, deps Deps) *Handler {
	return &Handler{logger: logger, templates: templates, deps: deps, now: time.Now}
}

// MountRoutes registers page routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.dashboard)
	r.Get("/invoices", h.invoices)
	r.Get("/create-invoice", h.createInvoice)
	r.Get("/invoice/{id}", h.invoiceDetail)
	r.Get("/invoice/{id}/pdf", h.invoicePDF)
	r.Get("/products", h.products)
	r.Get("/clients", h.clients)
	r.Get("/settings", h.settings)
}

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.deps.Stats.Stats(r.Context())
	if err != nil {
		h.fail(w, r, "load dashboard", err)
		return
	}
	h.render(w, r, "pages/dashboard.html", "Dashboard", stats)
}

func (h *Handler) invoices(w http.ResponseWriter, r *http.Request) {
	list, err := h.deps.Invoices.List(r.Context())
	if err != nil {
		h.fail(w, r, "list invoices", err)
		return
	}
	h.render(w, r, "pages/invoices.html", "Invoices", list)
}

type createInvoiceData struct {
	NextNumber string
	Clients    []clients.Client
	Products   []products.Product
	Today      string
	DueDate    string
}

func (h *Handler) createInvoice(w http.ResponseWriter, r *http.Request) {
	today := h.now()
	data := createInvoiceData{
		Today:   today.Format(time.DateOnly),
		DueDate: today.AddDate(0, 0, DefaultDueDays).Format(time.DateOnly),
	}
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		next, err := h.deps.Invoices.PeekNextNumber(ctx)
		data.NextNumber = next
		return err
	})
	g.Go(func() error {
		list, err := h.deps.Clients.List(ctx)
		data.Clients = list
		return err
	})
	g.Go(func() error {
		list, err := h.deps.Products.List(ctx)
		data.Products = list
		return err
	})
	if err := g.Wait(); err != nil {
		h.fail(w, r, "load invoice form", err)
		return
	}
	h.render(w, r, "pages/create_invoice.html", "New invoice", data)
}

type invoiceView struct {
	Invoice       invoices.Detail
	Items         []invoices.Item
	Company       settings.CompanySettings
	Tax           invoices.TaxSplit
	AmountInWords string
}

func (h *Handler) loadInvoice(ctx context.Context, id int64) (invoiceView, error) {
	var v invoiceView
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		inv, err := h.deps.Invoices.Header(ctx, id)
		v.Invoice = inv
		return err
	})
	g.Go(func() error {
		items, err := h.deps.Invoices.Items(ctx, id)
		v.Items = items
		return err
	})
	g.Go(func() error {
		cs, err := h.deps.Settings.Get(ctx)
		if errors.Is(err, shared.ErrNotFound) {
			return nil
		}
		v.Company = cs
		return err
	})
	if err := g.Wait(); err != nil {
		return invoiceView{}, err
	}
	clientState := ""
	if v.Invoice.ClientState != nil {
		clientState = *v.Invoice.ClientState
	}
	v.Tax = invoices.SplitGST(v.Invoice.TotalTax, v.Company.State, clientState)
	v.AmountInWords = invoices.AmountInWords(v.Invoice.GrandTotal)
	return v, nil
}

// invoiceFor resolves the {id} route parameter and loads the invoice. It
// redirects to the invoice list and reports false when there is nothing to show.
func (h *Handler) invoiceFor(w http.ResponseWriter, r *http.Request) (invoiceView, bool) {
	id, err := httpx.IDParam(r, "id")
	if err != nil {
		http.Redirect(w, r, "/invoices", http.StatusFound)
		return invoiceView{}, false
	}
	v, err := h.loadInvoice(r.Context(), id)
	if errors.Is(err, shared.ErrNotFound) {
		http.Redirect(w, r, "/invoices", http.StatusFound)
		return invoiceView{}, false
	}
	if err != nil {
		h.fail(w, r, "load invoice", err)
		return invoiceView{}, false
	}
	return v, true
}

func (h *Handler) invoiceDetail(w http.ResponseWriter, r *http.Request) {
	v, ok := h.invoiceFor(w, r)
	if !ok {
		return
	}
	h.renderWithCompany(w, r, "pages/invoice_detail.html", "Invoice "+v.Invoice.InvoiceNumber, v.Company.CompanyName, v)
}

func (h *Handler) invoicePDF(w http.ResponseWriter, r *http.Request) {
	if h.deps.PDF == nil {
		http.Error(w, "PDF rendering is not configured", http.StatusServiceUnavailable)
		return
	}
	v, ok := h.invoiceFor(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	data := view.TemplateData{Title: "Invoice " + v.Invoice.InvoiceNumber, CompanyName: v.Company.CompanyName, Data: v}
	if err := h.templates.Execute(&buf, "pages/invoice_pdf.html", data); err != nil {
		h.fail(w, r, "render invoice html", err)
		return
	}
	pdf, err := h.deps.PDF.RenderHTML(r.Context(), buf.String())
	if err != nil {
		h.logger.Error("render invoice pdf", slog.Int64("invoice_id", v.Invoice.ID), slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusBadGateway), http.StatusBadGateway)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", v.Invoice.InvoiceNumber+".pdf"))
	_, _ = w.Write(pdf)
}

func (h *Handler) products(w http.ResponseWriter, r *http.Request) {
	list, err := h.deps.Products.List(r.Context())
	if err != nil {
		h.fail(w, r, "list products", err)
		return
	}
	h.render(w, r, "pages/products.html", "Products", list)
}

func (h *Handler) clients(w http.ResponseWriter, r *http.Request) {
	list, err := h.deps.Clients.List(r.Context())
	if err != nil {
		h.fail(w, r, "list clients", err)
		return
	}
	h.render(w, r, "pages/clients.html", "Clients", list)
}

func (h *Handler) settings(w http.ResponseWriter, r *http.Request) {
	cs, err := h.deps.Settings.Get(r.Context())
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		h.fail(w, r, "load settings", err)
		return
	}
	h.renderWithCompany(w, r, "pages/settings.html", "Settings", cs.CompanyName, cs)
}

// render looks up the company name for the page header. A settings failure
// only costs the header its name.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, name, title string, data any) {
	company := ""
	cs, err := h.deps.Settings.Get(r.Context())
	switch {
	case err == nil:
		company = cs.CompanyName
	case !errors.Is(err, shared.ErrNotFound):
		h.logger.Warn("load company name", slog.Any("error", err))
	}
	h.renderWithCompany(w, r, name, title, company, data)
}

func (h *Handler) renderWithCompany(w http.ResponseWriter, r *http.Request, name, title, company string, data any) {
	viewData := view.TemplateData{Title: title, CompanyName: company, CurrentPath: r.URL.Path, Data: data}
	if err := h.templates.Render(w, name, viewData); err != nil {
		h.fail(w, r, "render "+name, err)
	}
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	h.logger.Error(op, slog.Any("error", err), slog.String("path", r.URL.Path))
	http.Error(w, "Internal server error", http.StatusInternalServerError)
}
