package cancel_booking

import cancelBooking "github.com/m04kA/SMC-WellnessBooking/internal/usecase/cancel_booking"

// CancelBookingRequest HTTP request model
type CancelBookingRequest struct {
	Reason *string `json:"reason,omitempty"`
}

// RefundResponse данные рассчитанного возврата
type RefundResponse struct {
	Band        string `json:"band"`
	RefundPaise int64  `json:"refundPaise"`
	Status      string `json:"status,omitempty"`
}

// CancelBookingResponse HTTP response model
type CancelBookingResponse struct {
	Ok               bool            `json:"ok"`
	BookingID        int64           `json:"bookingId"`
	Status           string          `json:"status"`
	AlreadyCancelled bool            `json:"alreadyCancelled,omitempty"`
	Refund           *RefundResponse `json:"refund,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *cancelBooking.Response) *CancelBookingResponse {
	out := &CancelBookingResponse{
		Ok:               true,
		BookingID:        resp.BookingID,
		Status:           resp.Status,
		AlreadyCancelled: resp.AlreadyCancelled,
	}
	if resp.Refund != nil {
		out.Refund = &RefundResponse{
			Band:        resp.Refund.Band,
			RefundPaise: resp.Refund.RefundPaise,
			Status:      resp.Refund.Status,
		}
	}
	return out
}
