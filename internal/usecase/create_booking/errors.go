package create_booking

import "errors"

var (
	// ErrPastTime возвращается, когда время бронирования не в будущем
	ErrPastTime = errors.New("booking time must be in the future")

	// ErrMisaligned возвращается, когда время не выровнено по 30-минутной сетке
	ErrMisaligned = errors.New("must be aligned to 30-minute slots")

	// ErrHealerNotFound возвращается, когда мастер не найден или неактивен
	ErrHealerNotFound = errors.New("healer not found or inactive")

	// ErrServiceNotFound возвращается, когда услуга не найдена или неактивна
	ErrServiceNotFound = errors.New("service not found or inactive")

	// ErrHealerUnavailable возвращается, когда время вне окна доступности мастера
	ErrHealerUnavailable = errors.New("healer not available at this time")

	// ErrSlotNotAvailable возвращается, когда слот занят другим бронированием
	ErrSlotNotAvailable = errors.New("time slot not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
