package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/CWP-AllocationService/internal/api/handlers"
	"github.com/m04kA/CWP-AllocationService/internal/api/middleware"
	createBooking "github.com/m04kA/CWP-AllocationService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidScheduledAt  = "некорректный формат времени начала, ожидается RFC 3339"
	msgVehicleNotFound     = "автомобиль не найден"
	msgServiceNotFound     = "услуга не найдена"
	msgNoCandidateResource = "нет ресурсов, подходящих для этого заказа"
	msgCapacityExhausted   = "все подходящие ресурсы заняты в выбранное время"
	msgInvalidSchedule     = "некорректное время бронирования"
	msgLocationRequired    = "для выездного обслуживания требуются координаты"
	msgInvalidInput        = "некорректные данные бронирования"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	customerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgInvalidRequestBody)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом времени)
	useCaseReq, err := req.ToUseCaseRequest(customerID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse scheduledAt: %v", err)
		handlers.RespondBadRequest(w, msgInvalidScheduledAt)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		// Обработка ошибок use case
		switch {
		case errors.Is(err, createBooking.ErrVehicleNotFound):
			h.logger.Warn("POST /bookings - Vehicle not found: customer_id=%d, vehicle_id=%d", customerID, req.VehicleID)
			handlers.RespondNotFound(w, msgVehicleNotFound)

		case errors.Is(err, createBooking.ErrServiceNotFound):
			h.logger.Warn("POST /bookings - Service not found: customer_id=%d, service_ids=%v", customerID, req.ServiceIDs)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createBooking.ErrNoCandidateResource):
			h.logger.Warn("POST /bookings - No candidate resource: customer_id=%d, type=%s", customerID, req.BookingType)
			handlers.RespondUnprocessableEntity(w, msgNoCandidateResource)

		case errors.Is(err, createBooking.ErrCapacityExhausted):
			h.logger.Warn("POST /bookings - Capacity exhausted: customer_id=%d, scheduled_at=%s", customerID, req.ScheduledAt)
			handlers.RespondBadRequest(w, msgCapacityExhausted)

		case errors.Is(err, createBooking.ErrInvalidSchedule):
			h.logger.Warn("POST /bookings - Invalid schedule: customer_id=%d, scheduled_at=%s", customerID, req.ScheduledAt)
			handlers.RespondBadRequest(w, msgInvalidSchedule)

		case errors.Is(err, createBooking.ErrLocationRequired):
			h.logger.Warn("POST /bookings - Location required: customer_id=%d", customerID)
			handlers.RespondBadRequest(w, msgLocationRequired)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: customer_id=%d, error=%v", customerID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: customer_id=%d, error=%v", customerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, customer_id=%d, status=%s",
		result.ID, customerID, result.Status)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
