package reschedule_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-WellnessBooking/internal/api/handlers"
	"github.com/m04kA/SMC-WellnessBooking/internal/api/middleware"
	rescheduleBooking "github.com/m04kA/SMC-WellnessBooking/internal/usecase/reschedule_booking"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTime        = "некорректный формат времени, ожидается RFC 3339"
	msgNotFound           = "бронирование не найдено"
	msgNotReschedulable   = "бронирование нельзя перенести"
	msgTooCloseToStart    = "до начала сеанса меньше 24 часов"
	msgPastTime           = "время бронирования должно быть в будущем"
	msgMisaligned         = "время должно быть выровнено по 30-минутной сетке"
	msgHealerUnavailable  = "мастер недоступен в выбранное время"
	msgSlotNotAvailable   = "выбранный временной слот недоступен"
	msgMissingUserID      = "отсутствует ID пользователя"
)

type Handler struct {
	useCase RescheduleBookingUseCase
	logger  Logger
}

func NewHandler(useCase RescheduleBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/reschedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/reschedule - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /bookings/{id}/reschedule - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req RescheduleBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id}/reschedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID, bookingID)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/reschedule - Failed to parse new time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, rescheduleBooking.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/reschedule - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, rescheduleBooking.ErrNotReschedulable):
			h.logger.Warn("PATCH /bookings/{id}/reschedule - Not reschedulable: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgNotReschedulable)

		case errors.Is(err, rescheduleBooking.ErrTooCloseToStart):
			h.logger.Warn("PATCH /bookings/{id}/reschedule - Too close to start: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgTooCloseToStart)

		case errors.Is(err, rescheduleBooking.ErrPastTime):
			h.logger.Warn("PATCH /bookings/{id}/reschedule - Past time: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgPastTime)

		case errors.Is(err, rescheduleBooking.ErrMisaligned):
			h.logger.Warn("PATCH /bookings/{id}/reschedule - Misaligned time: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgMisaligned)

		case errors.Is(err, rescheduleBooking.ErrHealerUnavailable):
			h.logger.Warn("PATCH /bookings/{id}/reschedule - Healer unavailable: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgHealerUnavailable)

		case errors.Is(err, rescheduleBooking.ErrSlotNotAvailable):
			h.logger.Warn("PATCH /bookings/{id}/reschedule - Slot not available: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, rescheduleBooking.ErrInvalidInput):
			h.logger.Warn("PATCH /bookings/{id}/reschedule - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("PATCH /bookings/{id}/reschedule - Failed: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/reschedule - Booking rescheduled: booking_id=%d, user_id=%d",
		bookingID, userID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
