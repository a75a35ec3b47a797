package list_wash_bays

import (
	"net/http"

	"github.com/m04kA/CWP-AllocationService/internal/api/handlers"
)

type Handler struct {
	registry ResourceRegistry
	logger   Logger
}

func NewHandler(registry ResourceRegistry, logger Logger) *Handler {
	return &Handler{
		registry: registry,
		logger:   logger,
	}
}

// Handle GET /api/v1/wash-bays
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bays, err := h.registry.ListWashBays(r.Context())
	if err != nil {
		h.logger.Error("GET /wash-bays - Failed to list wash bays: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromDomainList(bays))
}
