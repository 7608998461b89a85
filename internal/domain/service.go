package domain

import "time"

// Service represents a wellness service offered on the platform
// Бронирование снимает с услуги длительность и цену на момент создания,
// поэтому изменение услуги не влияет на существующие бронирования
type Service struct {
	ID              int64
	Name            string
	DurationMinutes int
	PricePaise      int64
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
