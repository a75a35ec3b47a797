package create_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/CWP-AllocationService/internal/domain"
	"github.com/m04kA/CWP-AllocationService/internal/integrations/catalogservice"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.CustomerID <= 0 {
		return fmt.Errorf("%w: customerID must be positive", ErrInvalidInput)
	}

	if req.VehicleID <= 0 {
		return fmt.Errorf("%w: vehicleID must be positive", ErrInvalidInput)
	}

	if len(req.ServiceIDs) < domain.MinServicesPerBooking {
		return fmt.Errorf("%w: at least one service is required", ErrInvalidInput)
	}

	if len(req.ServiceIDs) > domain.MaxServicesPerBooking {
		return fmt.Errorf("%w: at most %d services per booking", ErrInvalidInput, domain.MaxServicesPerBooking)
	}

	for _, id := range req.ServiceIDs {
		if id <= 0 {
			return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
		}
	}

	if req.BookingType != domain.BookingTypeStationary && req.BookingType != domain.BookingTypeMobile {
		return fmt.Errorf("%w: unknown booking type %q", ErrInvalidInput, req.BookingType)
	}

	if req.ScheduledAt.IsZero() {
		return fmt.Errorf("%w: scheduledAt is required", ErrInvalidInput)
	}

	if req.BookingType == domain.BookingTypeMobile && req.CustomerLocation == nil {
		return ErrLocationRequired
	}

	// Предпочтение ресурса должно соответствовать типу бронирования
	if req.BookingType == domain.BookingTypeStationary && req.MobileTeamID != nil {
		return fmt.Errorf("%w: mobileTeamId is not applicable to stationary booking", ErrInvalidInput)
	}
	if req.BookingType == domain.BookingTypeMobile && req.WashBayID != nil {
		return fmt.Errorf("%w: washBayId is not applicable to mobile booking", ErrInvalidInput)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateSchedule проверяет вычисленное окно бронирования
// Начало окна должно быть строго в будущем, суммарная длительность -
// в допустимых пределах
func validateSchedule(window domain.TimeWindow, now time.Time) error {
	if !window.Start.After(now) {
		return fmt.Errorf("%w: scheduledAt must be in the future", ErrInvalidSchedule)
	}

	minutes := window.DurationMinutes()
	if minutes < domain.MinBookingDurationMinutes || minutes > domain.MaxBookingDurationMinutes {
		return fmt.Errorf("%w: total duration %d minutes is out of range [%d, %d]",
			ErrInvalidSchedule, minutes, domain.MinBookingDurationMinutes, domain.MaxBookingDurationMinutes)
	}

	return nil
}

// serviceDurations извлекает длительности услуг
func serviceDurations(services []*catalogservice.Service) []int {
	durations := make([]int, len(services))
	for i, svc := range services {
		durations[i] = svc.DurationMinutes
	}
	return durations
}

// serviceNames извлекает названия услуг для денормализации
func serviceNames(services []*catalogservice.Service) []string {
	names := make([]string, len(services))
	for i, svc := range services {
		names[i] = svc.Name
	}
	return names
}

// totalPrice суммирует цены услуг
// Услуги без цены (nil) считаются бесплатными - цена уточняется биллингом
func totalPrice(services []*catalogservice.Service) float64 {
	total := 0.0
	for _, svc := range services {
		if svc.Price != nil {
			total += *svc.Price
		}
	}
	return total
}

// requiredEquipment собирает объединение требуемого оборудования всех услуг
func requiredEquipment(services []*catalogservice.Service) []string {
	seen := make(map[string]struct{})
	result := make([]string, 0)

	for _, svc := range services {
		for _, eq := range svc.RequiredEquipment {
			if _, ok := seen[eq]; ok {
				continue
			}
			seen[eq] = struct{}{}
			result = append(result, eq)
		}
	}

	return result
}
