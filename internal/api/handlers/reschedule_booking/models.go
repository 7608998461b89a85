package reschedule_booking

import (
	"time"

	rescheduleBooking "github.com/m04kA/SMC-WellnessBooking/internal/usecase/reschedule_booking"
)

// RescheduleBookingRequest HTTP request model
type RescheduleBookingRequest struct {
	NewScheduledAt string `json:"newScheduledAt"` // RFC 3339
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID              int64  `json:"id"`
	UserID          int64  `json:"userId"`
	HealerID        int64  `json:"healerId"`
	ServiceID       int64  `json:"serviceId"`
	ScheduledAt     string `json:"scheduledAt"`
	DurationMinutes int    `json:"durationMinutes"`
	PricePaise      int64  `json:"pricePaise"`
	Status          string `json:"status"`
	ServiceName     string `json:"serviceName"`
	HealerName      string `json:"healerName"`
	UpdatedAt       string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RescheduleBookingRequest) ToUseCaseRequest(userID, bookingID int64) (*rescheduleBooking.Request, error) {
	newScheduledAt, err := time.Parse(time.RFC3339, r.NewScheduledAt)
	if err != nil {
		return nil, err
	}

	return &rescheduleBooking.Request{
		UserID:         userID,
		BookingID:      bookingID,
		NewScheduledAt: newScheduledAt.UTC(),
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *rescheduleBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:              resp.ID,
		UserID:          resp.UserID,
		HealerID:        resp.HealerID,
		ServiceID:       resp.ServiceID,
		ScheduledAt:     resp.ScheduledAt.Format(time.RFC3339),
		DurationMinutes: resp.DurationMinutes,
		PricePaise:      resp.PricePaise,
		Status:          resp.Status,
		ServiceName:     resp.ServiceName,
		HealerName:      resp.HealerName,
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
