package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-WellnessBooking/internal/api/handlers"
	"github.com/m04kA/SMC-WellnessBooking/internal/api/middleware"
	createBooking "github.com/m04kA/SMC-WellnessBooking/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTime        = "некорректный формат времени, ожидается RFC 3339"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgPastTime           = "время бронирования должно быть в будущем"
	msgMisaligned         = "время должно быть выровнено по 30-минутной сетке"
	msgHealerNotFound     = "мастер не найден или неактивен"
	msgServiceNotFound    = "услуга не найдена или неактивна"
	msgHealerUnavailable  = "мастер недоступен в выбранное время"
	msgSlotNotAvailable   = "выбранный временной слот недоступен"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse scheduled_at: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - Slot not available: user_id=%d, healer_id=%d", userID, req.HealerID)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrHealerNotFound):
			h.logger.Warn("POST /bookings - Healer not found: healer_id=%d", req.HealerID)
			handlers.RespondNotFound(w, msgHealerNotFound)

		case errors.Is(err, createBooking.ErrServiceNotFound):
			h.logger.Warn("POST /bookings - Service not found: service_id=%d", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createBooking.ErrPastTime):
			h.logger.Warn("POST /bookings - Past time: user_id=%d, healer_id=%d", userID, req.HealerID)
			handlers.RespondBadRequest(w, msgPastTime)

		case errors.Is(err, createBooking.ErrMisaligned):
			h.logger.Warn("POST /bookings - Misaligned time: user_id=%d, healer_id=%d", userID, req.HealerID)
			handlers.RespondBadRequest(w, msgMisaligned)

		case errors.Is(err, createBooking.ErrHealerUnavailable):
			h.logger.Warn("POST /bookings - Healer unavailable: user_id=%d, healer_id=%d", userID, req.HealerID)
			handlers.RespondConflict(w, msgHealerUnavailable)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, healer_id=%d, error=%v",
				userID, req.HealerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, user_id=%d, healer_id=%d",
		result.ID, userID, req.HealerID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
