package verify_payment

import "errors"

var (
	// ErrInvalidSignature возвращается, когда клиентская подпись не сошлась
	ErrInvalidSignature = errors.New("invalid payment signature")

	// ErrPaymentNotFound возвращается, когда платеж по заказу не найден
	ErrPaymentNotFound = errors.New("payment not found")

	// ErrBookingNotFound возвращается, когда бронирование не найдено
	// или принадлежит другому пользователю
	ErrBookingNotFound = errors.New("booking not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
