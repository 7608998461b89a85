package reschedule_booking

import "time"

// Request модель запроса на перенос бронирования
type Request struct {
	UserID         int64     // ID пользователя (владельца бронирования)
	BookingID      int64     // ID бронирования
	NewScheduledAt time.Time // Новое время начала сеанса (UTC)
}

// Response модель ответа с перенесенным бронированием
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
	UpdatedAt       time.Time
}
