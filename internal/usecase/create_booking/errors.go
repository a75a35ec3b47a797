package create_booking

import "errors"

var (
	// ErrVehicleNotFound возвращается, когда автомобиль не найден
	ErrVehicleNotFound = errors.New("create_booking: vehicle not found")

	// ErrServiceNotFound возвращается, когда хотя бы одна услуга не найдена
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrNoCandidateResource возвращается, когда ни один ресурс не совместим
	// с запросом (класс автомобиля, оборудование, радиус). Конфигурационная
	// ошибка, отличается от исчерпания вместимости
	ErrNoCandidateResource = errors.New("create_booking: no compatible resource")

	// ErrCapacityExhausted возвращается, когда совместимые ресурсы есть,
	// но все заняты на запрошенное окно
	ErrCapacityExhausted = errors.New("create_booking: all resources are busy for this window")

	// ErrInvalidSchedule возвращается при некорректном расписании:
	// время начала не в будущем или неположительная суммарная длительность
	ErrInvalidSchedule = errors.New("create_booking: invalid schedule")

	// ErrLocationRequired возвращается для выездного бронирования без координат клиента
	ErrLocationRequired = errors.New("create_booking: customer location is required for mobile booking")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
