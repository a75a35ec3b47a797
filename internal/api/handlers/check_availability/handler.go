package check_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/CWP-AllocationService/internal/api/handlers"
	checkAvailability "github.com/m04kA/CWP-AllocationService/internal/usecase/check_availability"
)

const (
	msgInvalidQuery        = "некорректные параметры запроса"
	msgNoCandidateResource = "нет ресурсов, подходящих для этого запроса"
	msgInvalidSchedule     = "некорректное время бронирования"
	msgLocationRequired    = "для выездного обслуживания требуются координаты"
)

type Handler struct {
	useCase CheckAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase CheckAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req, err := ParseQuery(r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /availability - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, checkAvailability.ErrNoCandidateResource):
			handlers.RespondUnprocessableEntity(w, msgNoCandidateResource)

		case errors.Is(err, checkAvailability.ErrInvalidSchedule):
			handlers.RespondBadRequest(w, msgInvalidSchedule)

		case errors.Is(err, checkAvailability.ErrLocationRequired):
			handlers.RespondBadRequest(w, msgLocationRequired)

		case errors.Is(err, checkAvailability.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidQuery)

		default:
			h.logger.Error("GET /availability - Failed to check availability: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
