package get_availability_day

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-WellnessBooking/internal/api/handlers"
	"github.com/m04kA/SMC-WellnessBooking/internal/domain"
	getAvailability "github.com/m04kA/SMC-WellnessBooking/internal/usecase/get_availability"
)

const (
	msgInvalidHealerID = "некорректный ID мастера"
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingDate     = "отсутствует параметр date"
)

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/healers/{healerId}/availability-day?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	healerID, err := strconv.ParseInt(vars["healerId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /healers/{id}/availability-day - Invalid healer ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidHealerID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /healers/{id}/availability-day - Missing date parameter")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	date, err := time.ParseInLocation(domain.DateFormat, dateStr, time.UTC)
	if err != nil {
		h.logger.Warn("GET /healers/{id}/availability-day - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailability.Request{
		HealerID: healerID,
		Date:     date,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrInvalidInput):
			h.logger.Warn("GET /healers/{id}/availability-day - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidHealerID)

		default:
			h.logger.Error("GET /healers/{id}/availability-day - Failed: healer_id=%d, error=%v", healerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /healers/{id}/availability-day - Availability retrieved: healer_id=%d, date=%s",
		healerID, dateStr)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
