package check_availability

import (
	"time"

	"github.com/m04kA/CWP-AllocationService/internal/domain"
)

// Request модель запроса проверки доступности ресурсов
type Request struct {
	BookingType     domain.BookingType      // stationary | mobile
	VehicleSize     domain.VehicleSizeClass // Класс размера автомобиля
	ScheduledAt     time.Time               // Начало запрашиваемого окна
	DurationMinutes int                     // Длительность окна

	// Координаты клиента, обязательны для mobile
	CustomerLocation *domain.GeoPoint
}

// ResourceAvailability доступность одного ресурса в запрошенном окне
type ResourceAvailability struct {
	ResourceType string // wash_bay | mobile_team
	ResourceID   int64
	Label        string // Номер бокса или название бригады
	Available    bool   // Свободен ли ресурс в запрошенном окне
}

// Response модель ответа со списком совместимых ресурсов
type Response struct {
	ScheduledAt time.Time // Начало окна
	WindowEnd   time.Time // Конец окна (не включительно)
	Resources   []ResourceAvailability
}
