package check_availability

import "errors"

var (
	// ErrNoCandidateResource нет ресурсов, совместимых с запросом
	ErrNoCandidateResource = errors.New("check_availability: no candidate resource")

	// ErrInvalidSchedule некорректное окно бронирования
	ErrInvalidSchedule = errors.New("check_availability: invalid schedule")

	// ErrLocationRequired для мобильного типа не переданы координаты
	ErrLocationRequired = errors.New("check_availability: customer location required")

	// ErrInvalidInput некорректные входные данные
	ErrInvalidInput = errors.New("check_availability: invalid input")

	// ErrInternal внутренняя ошибка
	ErrInternal = errors.New("check_availability: internal error")
)
