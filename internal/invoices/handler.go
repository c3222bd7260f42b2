package invoices

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/odyssey-erp/billing/internal/platform/httpx"
)

// CreationRecorder counts stored invoices by numbering mode ("auto" or "manual").
type CreationRecorder interface {
	InvoiceCreated(numbering string)
}

// Handler wires the invoice JSON API.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	recorder CreationRecorder
}

// NewHandler constructs invoice handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// WithRecorder attaches a CreationRecorder.
func (h *Handler) WithRecorder(rec CreationRecorder) *Handler {
	h.recorder = rec
	return h
}

// MountRoutes registers invoice routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Post("/calculate", h.calculate)
	r.Get("/{id}", h.get)
	r.Delete("/{id}", h.delete)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	out, err := h.service.List(r.Context())
	if err != nil {
		httpx.Fail(h.logger, w, r, "list invoices", err)
		return
	}
	httpx.JSON(w, http.StatusOK, out)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.IDParam(r, "id")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	inv, items, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.Fail(h.logger, w, r, "get invoice", err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"invoice": inv, "items": items})
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	created, err := h.service.Create(r.Context(), req)
	if err != nil {
		httpx.Fail(h.logger, w, r, "create invoice", err)
		return
	}
	h.logger.Info("invoice created",
		slog.Int64("invoice_id", created.ID),
		slog.String("invoice_number", created.InvoiceNumber),
		slog.Int("items", len(req.Items)),
	)
	if h.recorder != nil {
		numbering := "manual"
		if req.InvoiceNumber == "" {
			numbering = "auto"
		}
		h.recorder.InvoiceCreated(numbering)
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"id":             created.ID,
		"invoice_number": created.InvoiceNumber,
		"message":        "Invoice created successfully",
	})
}

func (h *Handler) calculate(w http.ResponseWriter, r *http.Request) {
	var req CalculateRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	totals, err := Calculate(req)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, totals)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.IDParam(r, "id")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		httpx.Fail(h.logger, w, r, "delete invoice", err)
		return
	}
	httpx.Message(w, "Invoice deleted successfully")
}
