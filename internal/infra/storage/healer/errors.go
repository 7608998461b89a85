package healer

import "errors"

var (
	// ErrHealerNotFound возвращается, когда целитель не найден
	ErrHealerNotFound = errors.New("healer.repository: healer not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("healer.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("healer.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("healer.repository: failed to scan row")

	// ErrInvalidAvailability возвращается при некорректном JSON расписания
	ErrInvalidAvailability = errors.New("healer.repository: invalid availability payload")
)
