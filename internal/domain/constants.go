package domain

// Business validation constants
const (
	MinServicesPerBooking = 1
	MaxServicesPerBooking = 10

	MinBookingDurationMinutes = 5
	MaxBookingDurationMinutes = 480 // 8 часов

	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses статусы, при которых бронирование удерживает ресурс
// Используются при проверке пересечений окон
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusInProgress,
}

// InactiveStatuses статусы, при которых ресурс освобождён
var InactiveStatuses = []BookingStatus{
	StatusCompleted,
	StatusCancelledByUser,
	StatusCancelledByCompany,
}
