package confirm_with_credits

// Request модель запроса подтверждения бронирования VIP кредитом
type Request struct {
	UserID    int64 // ID пользователя (владельца бронирования)
	BookingID int64 // ID бронирования
}

// Response результат подтверждения
type Response struct {
	BookingID        int64  // ID бронирования
	Status           string // Статус бронирования после подтверждения
	AlreadyConfirmed bool   // Бронирование уже было подтверждено, кредит не списан
	CreditsRemaining int    // Остаток кредитов после списания
}
