package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	// или принадлежит другому пользователю
	ErrBookingNotFound = errors.New("booking not found")

	// ErrTooCloseToStart возвращается при жестком удалении ближе 24 часов до сеанса
	ErrTooCloseToStart = errors.New("too close to start time")

	// ErrInvalidStatus возвращается при попытке установить недопустимый статус
	ErrInvalidStatus = errors.New("invalid booking status")

	// ErrInvalidTransition возвращается при недопустимом переходе статуса
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
