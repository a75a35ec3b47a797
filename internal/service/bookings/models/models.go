package models

import (
	"errors"
	"time"

	"github.com/m04kA/CWP-AllocationService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	ActorID            int64  `json:"actorId"`
	CancellationReason string `json:"cancellationReason"`
}

// UpdateStatusRequest запрос на перевод бронирования в следующий статус
type UpdateStatusRequest struct {
	ActorID int64  `json:"actorId"`
	Status  string `json:"status"`
}

// GetCustomerBookingsRequest запрос на получение бронирований клиента
type GetCustomerBookingsRequest struct {
	CustomerID int64   `json:"customerId"`
	Status     *string `json:"status,omitempty"`
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID          int64   `json:"id"`
	CustomerID  int64   `json:"customerId"`
	VehicleID   int64   `json:"vehicleId"`
	VehicleSize string  `json:"vehicleSize"`
	ServiceIDs  []int64 `json:"serviceIds"`
	BookingType string  `json:"bookingType"`

	ScheduledAt     time.Time `json:"scheduledAt"`
	DurationMinutes int       `json:"durationMinutes"`
	Status          string    `json:"status"`

	// Назначенный ресурс
	WashBayID    *int64 `json:"washBayId,omitempty"`
	MobileTeamID *int64 `json:"mobileTeamId,omitempty"`

	// Денормализованные данные
	ServiceNames        []string `json:"serviceNames"`
	TotalPrice          float64  `json:"totalPrice"`
	VehicleBrand        *string  `json:"vehicleBrand,omitempty"`
	VehicleModel        *string  `json:"vehicleModel,omitempty"`
	VehicleLicensePlate *string  `json:"vehicleLicensePlate,omitempty"`
	Notes               *string  `json:"notes,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                  b.ID,
		CustomerID:          b.CustomerID,
		VehicleID:           b.VehicleID,
		VehicleSize:         string(b.VehicleSize),
		ServiceIDs:          b.ServiceIDs,
		BookingType:         string(b.BookingType),
		ScheduledAt:         b.ScheduledAt,
		DurationMinutes:     b.DurationMinutes,
		Status:              string(b.Status),
		ServiceNames:        b.ServiceNames,
		TotalPrice:          b.TotalPrice,
		VehicleBrand:        b.VehicleBrand,
		VehicleModel:        b.VehicleModel,
		VehicleLicensePlate: b.VehicleLicensePlate,
		Notes:               b.Notes,
		CancellationReason:  b.CancellationReason,
		CreatedAt:           b.CreatedAt,
		UpdatedAt:           b.UpdatedAt,
	}

	// Раскладываем назначение по типу ресурса
	switch b.ResourceType {
	case domain.ResourceTypeWashBay:
		resp.WashBayID = b.ResourceID
	case domain.ResourceTypeMobileTeam:
		resp.MobileTeamID = b.ResourceID
	}

	// Конвертируем CancelledAt в строку ISO 8601
	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	if bookings == nil {
		return &BookingListResponse{
			Bookings: []BookingResponse{},
		}
	}

	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, len(bookings)),
	}

	for i, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings[i] = *bookingResp
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)

	validStatuses := []domain.BookingStatus{
		domain.StatusPending,
		domain.StatusConfirmed,
		domain.StatusInProgress,
		domain.StatusCompleted,
		domain.StatusCancelledByUser,
		domain.StatusCancelledByCompany,
	}

	for _, valid := range validStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}
