package confirm_with_credits

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-WellnessBooking/internal/api/handlers"
	"github.com/m04kA/SMC-WellnessBooking/internal/api/middleware"
	confirmWithCredits "github.com/m04kA/SMC-WellnessBooking/internal/usecase/confirm_with_credits"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgNotFound         = "бронирование не найдено"
	msgNotConfirmable   = "бронирование нельзя подтвердить"
	msgNoCredits        = "нет доступных сессионных кредитов"
	msgMissingUserID    = "отсутствует ID пользователя"
)

// ConfirmWithCreditsResponse HTTP response model
type ConfirmWithCreditsResponse struct {
	Ok               bool   `json:"ok"`
	BookingID        int64  `json:"bookingId"`
	Status           string `json:"status"`
	AlreadyConfirmed bool   `json:"alreadyConfirmed,omitempty"`
	CreditsRemaining int    `json:"creditsRemaining"`
}

type Handler struct {
	useCase ConfirmWithCreditsUseCase
	logger  Logger
}

func NewHandler(useCase ConfirmWithCreditsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/confirm-with-credits
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/confirm-with-credits - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings/{id}/confirm-with-credits - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &confirmWithCredits.Request{
		UserID:    userID,
		BookingID: bookingID,
	})
	if err != nil {
		switch {
		case errors.Is(err, confirmWithCredits.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/confirm-with-credits - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, confirmWithCredits.ErrNotConfirmable):
			h.logger.Warn("POST /bookings/{id}/confirm-with-credits - Not confirmable: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgNotConfirmable)

		case errors.Is(err, confirmWithCredits.ErrNoCredits):
			h.logger.Warn("POST /bookings/{id}/confirm-with-credits - No credits: user_id=%d", userID)
			handlers.RespondConflict(w, msgNoCredits)

		default:
			h.logger.Error("POST /bookings/{id}/confirm-with-credits - Failed: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/confirm-with-credits - Confirmed: booking_id=%d, user_id=%d, already=%t",
		bookingID, userID, result.AlreadyConfirmed)
	handlers.RespondJSON(w, http.StatusOK, ConfirmWithCreditsResponse{
		Ok:               true,
		BookingID:        result.BookingID,
		Status:           result.Status,
		AlreadyConfirmed: result.AlreadyConfirmed,
		CreditsRemaining: result.CreditsRemaining,
	})
}
