package refund

import "errors"

var (
	// ErrRefundNotFound возвращается, когда возврат не найден
	ErrRefundNotFound = errors.New("refund.repository: refund not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("refund.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("refund.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("refund.repository: failed to scan row")
)
