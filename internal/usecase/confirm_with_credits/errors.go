package confirm_with_credits

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	// или принадлежит другому пользователю
	ErrBookingNotFound = errors.New("booking not found")

	// ErrNotConfirmable возвращается, когда бронирование в терминальном статусе
	ErrNotConfirmable = errors.New("booking cannot be confirmed")

	// ErrNoCredits возвращается, когда у пользователя нет доступных кредитов
	ErrNoCredits = errors.New("no session credits available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
