package verify_payment

// Request модель запроса подтверждения оплаты после checkout
type Request struct {
	UserID           int64  // ID пользователя (владельца бронирования)
	GatewayOrderID   string // ID заказа в шлюзе
	GatewayPaymentID string // ID платежа в шлюзе
	Signature        string // Клиентская подпись HMAC-SHA256
}

// Response результат подтверждения оплаты
type Response struct {
	Verified        bool   // Подпись сошлась и платеж в состоянии success
	AlreadyVerified bool   // Платеж уже был в состоянии success до вызова
	BookingID       *int64 // ID подтвержденного бронирования (если платеж привязан)
	BookingStatus   string // Статус бронирования после подтверждения
}
