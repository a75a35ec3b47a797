package registry

import "errors"

var (
	// ErrNoCandidateResource возвращается, когда ни один ресурс не подходит
	// по совместимости (класс автомобиля, оборудование, радиус обслуживания).
	// Отличается от "все ресурсы заняты" - это ошибка конфигурации или запроса
	ErrNoCandidateResource = errors.New("registry: no compatible resource")

	// ErrLocationRequired возвращается для выездного бронирования без координат клиента
	ErrLocationRequired = errors.New("registry: customer location is required for mobile booking")

	// ErrUnknownBookingType возвращается при неизвестном типе бронирования
	ErrUnknownBookingType = errors.New("registry: unknown booking type")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("registry: internal error")
)
