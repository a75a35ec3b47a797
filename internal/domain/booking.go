package domain

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending            BookingStatus = "pending"
	StatusConfirmed          BookingStatus = "confirmed"
	StatusInProgress         BookingStatus = "in_progress"
	StatusCompleted          BookingStatus = "completed"
	StatusCancelledByUser    BookingStatus = "cancelled_by_user"
	StatusCancelledByCompany BookingStatus = "cancelled_by_company"
)

// BookingType determines which kind of resource serves the booking
type BookingType string

const (
	BookingTypeStationary BookingType = "stationary" // мойка в боксе
	BookingTypeMobile     BookingType = "mobile"     // выездная бригада
)

// Booking represents a wash booking with its resource assignment
type Booking struct {
	ID          int64
	CustomerID  int64
	VehicleID   int64
	VehicleSize VehicleSizeClass
	ServiceIDs  []int64
	BookingType BookingType

	ScheduledAt     time.Time
	DurationMinutes int
	Status          BookingStatus

	// Назначенный ресурс. ResourceID заполнен только пока бронирование активно
	ResourceType ResourceType
	ResourceID   *int64

	// Координаты клиента, только для выездных бронирований
	CustomerLocation *GeoPoint

	// Denormalized data for history
	ServiceNames        []string
	TotalPrice          float64
	VehicleBrand        *string
	VehicleModel        *string
	VehicleLicensePlate *string
	Notes               *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking holds its resource
// Активные бронирования участвуют в проверке пересечений окон
func (b *Booking) IsActive() bool {
	return b.Status == StatusPending ||
		b.Status == StatusConfirmed ||
		b.Status == StatusInProgress
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelledByUser || b.Status == StatusCancelledByCompany
}

// CanBeCancelled returns true if the booking can still be cancelled
// Начатую или завершённую мойку отменить нельзя - сначала нужен возврат оплаты,
// который живёт в другом сервисе
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// CanTransitionTo reports whether the status change is a legal forward move
// Жизненный цикл: pending -> confirmed -> in_progress -> completed, только вперёд
func (b *Booking) CanTransitionTo(next BookingStatus) bool {
	switch next {
	case StatusConfirmed:
		return b.Status == StatusPending
	case StatusInProgress:
		return b.Status == StatusConfirmed
	case StatusCompleted:
		return b.Status == StatusInProgress
	case StatusCancelledByUser, StatusCancelledByCompany:
		return b.CanBeCancelled()
	default:
		return false
	}
}

// Window returns the half-open time window [ScheduledAt, ScheduledAt+Duration)
func (b *Booking) Window() TimeWindow {
	return NewTimeWindow(b.ScheduledAt, b.DurationMinutes)
}

// Assignment returns the resource assignment held by the booking,
// or nil if no resource is assigned
func (b *Booking) Assignment() *Assignment {
	if b.ResourceID == nil {
		return nil
	}
	return &Assignment{
		BookingID:    b.ID,
		ResourceType: b.ResourceType,
		ResourceID:   *b.ResourceID,
		Window:       b.Window(),
	}
}
