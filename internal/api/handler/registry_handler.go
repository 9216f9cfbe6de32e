package handler

import (
	"log/slog"
	"net/http"
	"xyzbank/internal/api/handler/dto"
	"xyzbank/internal/domain/registry"
)

type RegistryHandler struct {
	service registry.RegistryService
	logger  *slog.Logger
}

func NewRegistryHandler(s registry.RegistryService, l *slog.Logger) *RegistryHandler {
	if s == nil {
		panic("registry service cannot be nil")
	}
	if l == nil {
		panic("logger cannot be nil")
	}
	return &RegistryHandler{service: s, logger: l.With("component", "RegistryHandler")}
}

// GetSummary handles GET /registry
// @Summary Registry capacity
// @Description Returns the configured record ceiling, records in use and customer count.
// @Tags Registry
// @Produce json
// @Success 200 {object} dto.RegistryResponse "Registry summary"
// @Router /registry [get]
// @Security BearerAuth
func (h *RegistryHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	resp := dto.NewRegistryResponse(h.service.Summary(r.Context()))
	h.logger.DebugContext(r.Context(), "Registry summary served", slog.Int("recordCount", resp.RecordCount))
	respondJSON(w, http.StatusOK, resp)
}
