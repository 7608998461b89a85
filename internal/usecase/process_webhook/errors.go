package process_webhook

import "errors"

var (
	// ErrInvalidPayload возвращается при нечитаемом теле события
	ErrInvalidPayload = errors.New("invalid webhook payload")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
