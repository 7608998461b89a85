package paygateway

// CreateOrderRequest запрос на создание заказа в шлюзе
type CreateOrderRequest struct {
	AmountPaise int64             `json:"amount"`
	Currency    string            `json:"currency"`
	Receipt     string            `json:"receipt"`
	Notes       map[string]string `json:"notes,omitempty"`
}

// Order заказ, созданный в шлюзе
type Order struct {
	ID          string `json:"id"`
	AmountPaise int64  `json:"amount"`
	Currency    string `json:"currency"`
	Receipt     string `json:"receipt"`
	Status      string `json:"status"`
}

// CreateRefundRequest запрос на возврат платежа
type CreateRefundRequest struct {
	AmountPaise int64             `json:"amount"`
	Notes       map[string]string `json:"notes,omitempty"`
}

// RefundResult результат выдачи возврата шлюзом
type RefundResult struct {
	GatewayRefundID string `json:"id"`
	PaymentID       string `json:"payment_id"`
	AmountPaise     int64  `json:"amount"`
	Status          string `json:"status"`
}

// ErrorResponse модель ошибки от шлюза
type ErrorResponse struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}
