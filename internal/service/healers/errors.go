package healers

import "errors"

var (
	// ErrHealerNotFound возвращается, когда мастер не найден
	ErrHealerNotFound = errors.New("healer not found")

	// ErrAccessDenied возвращается при попытке менять чужое расписание
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
