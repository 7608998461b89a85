package membership

import "errors"

var (
	// ErrMembershipNotFound возвращается, когда подписка не найдена
	ErrMembershipNotFound = errors.New("membership.repository: membership not found")

	// ErrCreditNotFound возвращается, когда у пользователя нет доступных кредитов
	ErrCreditNotFound = errors.New("membership.repository: session credit not found")

	// ErrNoCreditsLeft возвращается при попытке списать кредит из исчерпанной записи
	ErrNoCreditsLeft = errors.New("membership.repository: no credits left")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("membership.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("membership.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("membership.repository: failed to scan row")
)
