package registry

import "github.com/m04kA/CWP-AllocationService/internal/domain"

// CandidateQuery запрос на подбор совместимых ресурсов
type CandidateQuery struct {
	BookingType       domain.BookingType
	VehicleSize       domain.VehicleSizeClass
	RequiredEquipment []string

	// Координаты клиента, обязательны для выездных бронирований
	CustomerLocation *domain.GeoPoint

	// Явно выбранный клиентом ресурс (бокс или бригада)
	// Если указан, список кандидатов сужается до него одного,
	// проверки совместимости при этом сохраняются
	PreferredResourceID *int64
}

// Candidate совместимый ресурс в порядке приоритета подбора
type Candidate struct {
	ResourceType domain.ResourceType
	ResourceID   int64
	Label        string // человекочитаемое имя: "bay #3", название бригады

	// Дневной лимит заказов (только для бригад, 0 - без лимита)
	DailyCapacity int
}
