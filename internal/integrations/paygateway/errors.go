package paygateway

import "errors"

var (
	// ErrOrderCreateFailed возвращается, когда шлюз отклонил создание заказа
	ErrOrderCreateFailed = errors.New("paygateway client: order creation failed")

	// ErrRefundFailed возвращается, когда шлюз отклонил выдачу возврата
	ErrRefundFailed = errors.New("paygateway client: refund failed")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("paygateway client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе шлюза
	ErrInvalidResponse = errors.New("paygateway client: invalid response")
)
