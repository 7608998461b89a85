package domain

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending     BookingStatus = "pending"
	StatusScheduled   BookingStatus = "scheduled"
	StatusConfirmed   BookingStatus = "confirmed"
	StatusRescheduled BookingStatus = "rescheduled"
	StatusCancelled   BookingStatus = "cancelled"
	StatusCompleted   BookingStatus = "completed"
)

// Booking represents a session booking in the system
// Все временные поля хранятся и интерпретируются в UTC
type Booking struct {
	ID              int64
	UserID          int64
	HealerID        int64
	ServiceID       int64
	ScheduledAt     time.Time // момент начала сеанса (UTC)
	DurationMinutes int       // снимок длительности услуги на момент создания
	PricePaise      int64     // снимок цены услуги на момент создания
	Status          BookingStatus

	// Denormalized data for history
	ServiceName string
	HealerName  string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EndsAt возвращает момент окончания сеанса
func (b *Booking) EndsAt() time.Time {
	return b.ScheduledAt.Add(time.Duration(b.DurationMinutes) * time.Minute)
}

// IsActive returns true if the booking occupies its time slot
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled && b.Status != StatusCompleted
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// IsCompleted returns true if the session took place
func (b *Booking) IsCompleted() bool {
	return b.Status == StatusCompleted
}

// CanBeCancelled returns true if the booking can be cancelled
// Отмена запрещена только для завершённых сеансов; повторная отмена
// обрабатывается идемпотентно на уровне usecase
func (b *Booking) CanBeCancelled() bool {
	return b.Status != StatusCompleted
}

// CanBeRescheduled returns true if the booking can be moved to a new time
func (b *Booking) CanBeRescheduled() bool {
	return b.IsActive()
}

// IsConfirmed returns true if payment or credit consumption confirmed the booking
func (b *Booking) IsConfirmed() bool {
	return b.Status == StatusConfirmed || b.Status == StatusScheduled
}

// Overlaps проверяет пересечение бронирования с интервалом [start, end)
// Строгие неравенства: граничащие интервалы не считаются пересечением
func (b *Booking) Overlaps(start, end time.Time) bool {
	return b.ScheduledAt.Before(end) && b.EndsAt().After(start)
}

// LeadTime возвращает время до начала сеанса относительно now
func (b *Booking) LeadTime(now time.Time) time.Duration {
	return b.ScheduledAt.Sub(now)
}
