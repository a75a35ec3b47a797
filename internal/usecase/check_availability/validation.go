package check_availability

import (
	"fmt"

	"github.com/m04kA/CWP-AllocationService/internal/domain"
)

// validateRequest проверяет корректность запроса
func validateRequest(req *Request) error {
	switch req.BookingType {
	case domain.BookingTypeStationary, domain.BookingTypeMobile:
	default:
		return fmt.Errorf("%w: unknown booking type %q", ErrInvalidInput, req.BookingType)
	}

	if !req.VehicleSize.IsValid() {
		return fmt.Errorf("%w: unknown vehicle size class %q", ErrInvalidInput, req.VehicleSize)
	}

	if req.ScheduledAt.IsZero() {
		return fmt.Errorf("%w: scheduled_at is required", ErrInvalidInput)
	}

	if req.DurationMinutes < domain.MinBookingDurationMinutes || req.DurationMinutes > domain.MaxBookingDurationMinutes {
		return fmt.Errorf("%w: duration must be between %d and %d minutes",
			ErrInvalidSchedule, domain.MinBookingDurationMinutes, domain.MaxBookingDurationMinutes)
	}

	if req.BookingType == domain.BookingTypeMobile && req.CustomerLocation == nil {
		return fmt.Errorf("%w: customer location is required for mobile booking", ErrLocationRequired)
	}

	return nil
}
