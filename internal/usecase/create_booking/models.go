package create_booking

import "time"

// Request модель запроса на создание бронирования
type Request struct {
	UserID      int64     // ID пользователя
	HealerID    int64     // ID мастера
	ServiceID   int64     // ID услуги
	ScheduledAt time.Time // Время начала сеанса (UTC)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              int64
	UserID          int64
	HealerID        int64
	ServiceID       int64
	ScheduledAt     time.Time
	DurationMinutes int
	PricePaise      int64
	Status          string
	ServiceName     string
	HealerName      string
	CreatedAt       time.Time
	// PaymentOrder заказ в платежном шлюзе для оплаты бронирования
	// nil, если заказ создать не удалось (оплата кредитами остается доступной)
	PaymentOrder *PaymentOrder
}

// PaymentOrder данные заказа платежного шлюза
type PaymentOrder struct {
	OrderID     string
	AmountPaise int64
	Currency    string
}
