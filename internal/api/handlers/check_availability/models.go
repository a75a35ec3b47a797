package check_availability

import (
	"net/url"
	"strconv"
	"time"

	"github.com/m04kA/CWP-AllocationService/internal/domain"
	checkAvailability "github.com/m04kA/CWP-AllocationService/internal/usecase/check_availability"
)

// ResourceAvailabilityModel доступность одного ресурса
type ResourceAvailabilityModel struct {
	ResourceType string `json:"resourceType"`
	ResourceID   int64  `json:"resourceId"`
	Label        string `json:"label"`
	Available    bool   `json:"available"`
}

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	ScheduledAt string                      `json:"scheduledAt"`
	WindowEnd   string                      `json:"windowEnd"`
	Resources   []ResourceAvailabilityModel `json:"resources"`
}

// ParseQuery разбирает query-параметры в модель use case
// Обязательные: bookingType, vehicleSize, scheduledAt, durationMinutes
// Для mobile дополнительно latitude и longitude
func ParseQuery(query url.Values) (*checkAvailability.Request, error) {
	scheduledAt, err := time.Parse(time.RFC3339, query.Get("scheduledAt"))
	if err != nil {
		return nil, err
	}

	durationMinutes, err := strconv.Atoi(query.Get("durationMinutes"))
	if err != nil {
		return nil, err
	}

	req := &checkAvailability.Request{
		BookingType:     domain.BookingType(query.Get("bookingType")),
		VehicleSize:     domain.VehicleSizeClass(query.Get("vehicleSize")),
		ScheduledAt:     scheduledAt,
		DurationMinutes: durationMinutes,
	}

	latStr, lonStr := query.Get("latitude"), query.Get("longitude")
	if latStr != "" && lonStr != "" {
		lat, err := strconv.ParseFloat(latStr, 64)
		if err != nil {
			return nil, err
		}
		lon, err := strconv.ParseFloat(lonStr, 64)
		if err != nil {
			return nil, err
		}
		req.CustomerLocation = &domain.GeoPoint{Latitude: lat, Longitude: lon}
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkAvailability.Response) *AvailabilityResponse {
	resources := make([]ResourceAvailabilityModel, 0, len(resp.Resources))
	for _, r := range resp.Resources {
		resources = append(resources, ResourceAvailabilityModel{
			ResourceType: r.ResourceType,
			ResourceID:   r.ResourceID,
			Label:        r.Label,
			Available:    r.Available,
		})
	}

	return &AvailabilityResponse{
		ScheduledAt: resp.ScheduledAt.Format(time.RFC3339),
		WindowEnd:   resp.WindowEnd.Format(time.RFC3339),
		Resources:   resources,
	}
}
