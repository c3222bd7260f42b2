package settings

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/odyssey-erp/billing/internal/platform/httpx"
)

type Handler struct {
	logger  *slog.Logger
	service *Service
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.Get)
	r.Put("/", h.Update)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	cs, err := h.service.Get(r.Context())
	if err != nil {
		httpx.Fail(h.logger, w, r, "get settings", err)
		return
	}
	httpx.JSON(w, http.StatusOK, cs)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var form SettingsForm
	if err := httpx.DecodeJSON(r, &form); err != nil {
		httpx.RespondError(w, err)
		return
	}
	if err := h.service.Update(r.Context(), form); err != nil {
		httpx.Fail(h.logger, w, r, "update settings", err)
		return
	}
	httpx.Message(w, "Settings updated successfully")
}
