package create_booking

import (
	"time"

	createBooking "github.com/m04kA/SMC-WellnessBooking/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	HealerID    int64  `json:"healerId"`
	ServiceID   int64  `json:"serviceId"`
	ScheduledAt string `json:"scheduledAt"` // RFC 3339
}

// PaymentOrderResponse данные заказа для оплаты
type PaymentOrderResponse struct {
	OrderID     string `json:"orderId"`
	AmountPaise int64  `json:"amountPaise"`
	Currency    string `json:"currency"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID              int64                 `json:"id"`
	UserID          int64                 `json:"userId"`
	HealerID        int64                 `json:"healerId"`
	ServiceID       int64                 `json:"serviceId"`
	ScheduledAt     string                `json:"scheduledAt"`
	DurationMinutes int                   `json:"durationMinutes"`
	PricePaise      int64                 `json:"pricePaise"`
	Status          string                `json:"status"`
	ServiceName     string                `json:"serviceName"`
	HealerName      string                `json:"healerName"`
	CreatedAt       string                `json:"createdAt"`
	PaymentOrder    *PaymentOrderResponse `json:"paymentOrder,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64) (*createBooking.Request, error) {
	scheduledAt, err := time.Parse(time.RFC3339, r.ScheduledAt)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		UserID:      userID,
		HealerID:    r.HealerID,
		ServiceID:   r.ServiceID,
		ScheduledAt: scheduledAt.UTC(),
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	out := &BookingResponse{
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
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
	}
	if resp.PaymentOrder != nil {
		out.PaymentOrder = &PaymentOrderResponse{
			OrderID:     resp.PaymentOrder.OrderID,
			AmountPaise: resp.PaymentOrder.AmountPaise,
			Currency:    resp.PaymentOrder.Currency,
		}
	}
	return out
}
