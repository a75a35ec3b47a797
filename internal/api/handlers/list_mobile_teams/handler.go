package list_mobile_teams

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

// Handle GET /api/v1/mobile-teams
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	teams, err := h.registry.ListMobileTeams(r.Context())
	if err != nil {
		h.logger.Error("GET /mobile-teams - Failed to list mobile teams: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromDomainList(teams))
}
