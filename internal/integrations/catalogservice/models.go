package catalogservice

// Service модель услуги мойки из CatalogService
type Service struct {
	ID                int64    `json:"id"`
	Name              string   `json:"name"`
	DurationMinutes   int      `json:"duration_minutes"`
	Price             *float64 `json:"price,omitempty"`
	RequiredEquipment []string `json:"required_equipment"`
}

// ErrorResponse модель ошибки от CatalogService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
