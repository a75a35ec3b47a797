package garageservice

// Vehicle модель автомобиля из GarageService
type Vehicle struct {
	ID           int64  `json:"id"`
	CustomerID   int64  `json:"customer_id"`
	Brand        string `json:"brand"`
	Model        string `json:"model"`
	LicensePlate string `json:"license_plate"`
	SizeClass    string `json:"size_class"` // compact | standard | large | oversized
}

// ErrorResponse модель ошибки от GarageService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
