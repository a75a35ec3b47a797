package resource

import "errors"

var (
	// ErrWashBayNotFound возвращается, когда бокс не найден
	ErrWashBayNotFound = errors.New("resource.repository: wash bay not found")

	// ErrMobileTeamNotFound возвращается, когда бригада не найдена
	ErrMobileTeamNotFound = errors.New("resource.repository: mobile team not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("resource.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("resource.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("resource.repository: failed to scan row")
)
