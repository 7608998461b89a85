package cancel_booking

// Request модель запроса на отмену бронирования с расчетом возврата
type Request struct {
	UserID    int64   // ID пользователя (владельца бронирования)
	BookingID int64   // ID бронирования
	Reason    *string // Причина отмены (опционально)
}

// Response результат отмены
type Response struct {
	BookingID        int64       // ID бронирования
	Status           string      // Статус после отмены (cancelled)
	AlreadyCancelled bool        // Бронирование уже было отменено, возврат не выдавался
	Refund           *RefundInfo // Рассчитанный возврат (nil при AlreadyCancelled)
}

// RefundInfo данные рассчитанного возврата
// Полоса возврата сообщается даже при нулевой сумме (оплата кредитами)
type RefundInfo struct {
	Band        string // NONE, HALF или FULL
	RefundPaise int64  // Сумма к возврату
	Status      string // Статус записи возврата (пусто, если возврат не выдавался)
}
