package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrResourceBusy возвращается, когда вставка нарушила exclusion constraint
	// на окна ресурса - ресурс уже занят пересекающимся бронированием
	ErrResourceBusy = errors.New("booking.repository: resource is busy for this window")

	// ErrStatusConflict возвращается, когда условный UPDATE не затронул строку:
	// статус бронирования сменился конкурентно между чтением и записью
	ErrStatusConflict = errors.New("booking.repository: booking status changed concurrently")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
