package create_booking

import (
	"time"

	"github.com/m04kA/CWP-AllocationService/internal/domain"
	createBooking "github.com/m04kA/CWP-AllocationService/internal/usecase/create_booking"
)

// GeoPointModel координаты клиента для выездного обслуживания
type GeoPointModel struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	VehicleID   int64   `json:"vehicleId"`
	ServiceIDs  []int64 `json:"serviceIds"`
	BookingType string  `json:"bookingType"` // stationary | mobile
	ScheduledAt string  `json:"scheduledAt"` // RFC 3339, например "2026-09-15T10:00:00Z"

	CustomerLocation *GeoPointModel `json:"customerLocation,omitempty"`

	// Явное предпочтение ресурса (опционально)
	WashBayID    *int64 `json:"washBayId,omitempty"`
	MobileTeamID *int64 `json:"mobileTeamId,omitempty"`

	Notes *string `json:"notes,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID              int64   `json:"id"`
	CustomerID      int64   `json:"customerId"`
	VehicleID       int64   `json:"vehicleId"`
	ServiceIDs      []int64 `json:"serviceIds"`
	BookingType     string  `json:"bookingType"`
	ScheduledAt     string  `json:"scheduledAt"`
	WindowEnd       string  `json:"windowEnd"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`

	WashBayID    *int64 `json:"washBayId,omitempty"`
	MobileTeamID *int64 `json:"mobileTeamId,omitempty"`

	ServiceNames        []string `json:"serviceNames"`
	TotalPrice          float64  `json:"totalPrice"`
	VehicleBrand        *string  `json:"vehicleBrand,omitempty"`
	VehicleModel        *string  `json:"vehicleModel,omitempty"`
	VehicleLicensePlate *string  `json:"vehicleLicensePlate,omitempty"`
	Notes               *string  `json:"notes,omitempty"`

	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(customerID int64) (*createBooking.Request, error) {
	// Парсим время начала
	scheduledAt, err := time.Parse(time.RFC3339, r.ScheduledAt)
	if err != nil {
		return nil, err
	}

	var location *domain.GeoPoint
	if r.CustomerLocation != nil {
		location = &domain.GeoPoint{
			Latitude:  r.CustomerLocation.Latitude,
			Longitude: r.CustomerLocation.Longitude,
		}
	}

	return &createBooking.Request{
		CustomerID:       customerID,
		VehicleID:        r.VehicleID,
		ServiceIDs:       r.ServiceIDs,
		BookingType:      domain.BookingType(r.BookingType),
		ScheduledAt:      scheduledAt,
		CustomerLocation: location,
		WashBayID:        r.WashBayID,
		MobileTeamID:     r.MobileTeamID,
		Notes:            r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:                  resp.ID,
		CustomerID:          resp.CustomerID,
		VehicleID:           resp.VehicleID,
		ServiceIDs:          resp.ServiceIDs,
		BookingType:         resp.BookingType,
		ScheduledAt:         resp.ScheduledAt.Format(time.RFC3339),
		WindowEnd:           resp.WindowEnd.Format(time.RFC3339),
		DurationMinutes:     resp.DurationMinutes,
		Status:              resp.Status,
		WashBayID:           resp.WashBayID,
		MobileTeamID:        resp.MobileTeamID,
		ServiceNames:        resp.ServiceNames,
		TotalPrice:          resp.TotalPrice,
		VehicleBrand:        resp.VehicleBrand,
		VehicleModel:        resp.VehicleModel,
		VehicleLicensePlate: resp.VehicleLicensePlate,
		Notes:               resp.Notes,
		CreatedAt:           resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:           resp.UpdatedAt.Format(time.RFC3339),
	}
}
