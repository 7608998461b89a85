package reschedule_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	// или принадлежит другому пользователю
	ErrBookingNotFound = errors.New("booking not found")

	// ErrNotReschedulable возвращается, когда бронирование в терминальном статусе
	ErrNotReschedulable = errors.New("booking cannot be rescheduled")

	// ErrTooCloseToStart возвращается, когда старое или новое время
	// ближе 24 часов к текущему моменту
	ErrTooCloseToStart = errors.New("too close to start time")

	// ErrPastTime возвращается, когда новое время не в будущем
	ErrPastTime = errors.New("booking time must be in the future")

	// ErrMisaligned возвращается, когда новое время не выровнено по сетке
	ErrMisaligned = errors.New("must be aligned to 30-minute slots")

	// ErrHealerUnavailable возвращается, когда новое время вне окна мастера
	ErrHealerUnavailable = errors.New("healer not available at this time")

	// ErrSlotNotAvailable возвращается, когда новый слот занят
	ErrSlotNotAvailable = errors.New("time slot not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
