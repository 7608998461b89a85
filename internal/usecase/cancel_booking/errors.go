package cancel_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	// или принадлежит другому пользователю
	ErrBookingNotFound = errors.New("booking not found")

	// ErrNotCancellable возвращается при попытке отменить завершенный сеанс
	ErrNotCancellable = errors.New("completed booking cannot be cancelled")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
