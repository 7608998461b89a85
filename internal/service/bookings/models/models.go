package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-WellnessBooking/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// GetUserBookingsRequest запрос на получение бронирований пользователя
type GetUserBookingsRequest struct {
	UserID int64   `json:"userId"`
	Status *string `json:"status,omitempty"`
}

// GetHealerBookingsRequest запрос на получение бронирований мастера
type GetHealerBookingsRequest struct {
	HealerID        int64      `json:"healerId"`
	StartDate       *time.Time `json:"startDate,omitempty"`       // Начало периода (опционально)
	EndDate         *time.Time `json:"endDate,omitempty"`         // Конец периода (опционально)
	IncludeInactive bool       `json:"includeInactive,omitempty"` // Включить отменённые и завершённые
}

// UpdateStatusRequest запрос на обновление статуса бронирования
type UpdateStatusRequest struct {
	UserID int64  `json:"userId"`
	Status string `json:"status"`
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"userId"`
	HealerID        int64     `json:"healerId"`
	ServiceID       int64     `json:"serviceId"`
	ScheduledAt     time.Time `json:"scheduledAt"`
	DurationMinutes int       `json:"durationMinutes"`
	PricePaise      int64     `json:"pricePaise"`
	Status          string    `json:"status"`

	// Снимок данных услуги и мастера на момент создания
	ServiceName string `json:"serviceName"`
	HealerName  string `json:"healerName"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                 b.ID,
		UserID:             b.UserID,
		HealerID:           b.HealerID,
		ServiceID:          b.ServiceID,
		ScheduledAt:        b.ScheduledAt,
		DurationMinutes:    b.DurationMinutes,
		PricePaise:         b.PricePaise,
		Status:             string(b.Status),
		ServiceName:        b.ServiceName,
		HealerName:         b.HealerName,
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}
	for _, b := range bookings {
		if converted := FromDomainBooking(b); converted != nil {
			resp.Bookings = append(resp.Bookings, *converted)
		}
	}
	return resp
}

// ToDomainBookingStatus конвертирует строку в domain статус
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	switch domain.BookingStatus(status) {
	case domain.StatusPending,
		domain.StatusScheduled,
		domain.StatusConfirmed,
		domain.StatusRescheduled,
		domain.StatusCancelled,
		domain.StatusCompleted:
		return domain.BookingStatus(status), nil
	default:
		return "", ErrInvalidStatus
	}
}
