package verify_payment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-WellnessBooking/internal/api/handlers"
	"github.com/m04kA/SMC-WellnessBooking/internal/api/middleware"
	verifyPayment "github.com/m04kA/SMC-WellnessBooking/internal/usecase/verify_payment"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidSignature   = "некорректная подпись платежа"
	msgPaymentNotFound    = "платеж не найден"
	msgBookingNotFound    = "бронирование не найдено"
	msgMissingUserID      = "отсутствует ID пользователя"
)

// VerifyPaymentRequest HTTP request model
type VerifyPaymentRequest struct {
	OrderID   string `json:"orderId"`
	PaymentID string `json:"paymentId"`
	Signature string `json:"signature"`
}

// VerifyPaymentResponse HTTP response model
type VerifyPaymentResponse struct {
	Ok              bool   `json:"ok"`
	AlreadyVerified bool   `json:"alreadyVerified,omitempty"`
	BookingID       *int64 `json:"bookingId,omitempty"`
	BookingStatus   string `json:"bookingStatus,omitempty"`
}

type Handler struct {
	useCase VerifyPaymentUseCase
	logger  Logger
}

func NewHandler(useCase VerifyPaymentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/payments/verify
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /payments/verify - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req VerifyPaymentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /payments/verify - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &verifyPayment.Request{
		UserID:           userID,
		GatewayOrderID:   req.OrderID,
		GatewayPaymentID: req.PaymentID,
		Signature:        req.Signature,
	})
	if err != nil {
		switch {
		case errors.Is(err, verifyPayment.ErrInvalidSignature):
			h.logger.Warn("POST /payments/verify - Invalid signature: order=%s", req.OrderID)
			handlers.RespondUnauthorized(w, msgInvalidSignature)

		case errors.Is(err, verifyPayment.ErrPaymentNotFound):
			h.logger.Warn("POST /payments/verify - Payment not found: order=%s", req.OrderID)
			handlers.RespondNotFound(w, msgPaymentNotFound)

		case errors.Is(err, verifyPayment.ErrBookingNotFound):
			h.logger.Warn("POST /payments/verify - Booking not found: order=%s", req.OrderID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, verifyPayment.ErrInvalidInput):
			h.logger.Warn("POST /payments/verify - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /payments/verify - Failed: order=%s, error=%v", req.OrderID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /payments/verify - Payment verified: order=%s, already=%t",
		req.OrderID, result.AlreadyVerified)
	handlers.RespondJSON(w, http.StatusOK, VerifyPaymentResponse{
		Ok:              true,
		AlreadyVerified: result.AlreadyVerified,
		BookingID:       result.BookingID,
		BookingStatus:   result.BookingStatus,
	})
}
