package get_healer_bookings

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-WellnessBooking/internal/api/handlers"
	"github.com/m04kA/SMC-WellnessBooking/internal/api/middleware"
	"github.com/m04kA/SMC-WellnessBooking/internal/domain"
	"github.com/m04kA/SMC-WellnessBooking/internal/service/bookings"
	"github.com/m04kA/SMC-WellnessBooking/internal/service/bookings/models"
)

const (
	msgInvalidHealerID = "некорректный ID мастера"
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidPeriod   = "некорректный период"
	msgMissingUserID   = "отсутствует ID пользователя"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/healers/{healerId}/bookings?startDate=&endDate=&includeInactive=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	healerID, err := strconv.ParseInt(vars["healerId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /healers/{id}/bookings - Invalid healer ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidHealerID)
		return
	}

	if _, ok := middleware.GetUserID(r.Context()); !ok {
		h.logger.Warn("GET /healers/{id}/bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	req := &models.GetHealerBookingsRequest{HealerID: healerID}

	query := r.URL.Query()
	if raw := query.Get("startDate"); raw != "" {
		start, err := time.ParseInLocation(domain.DateFormat, raw, time.UTC)
		if err != nil {
			h.logger.Warn("GET /healers/{id}/bookings - Invalid start date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.StartDate = &start
	}
	if raw := query.Get("endDate"); raw != "" {
		end, err := time.ParseInLocation(domain.DateFormat, raw, time.UTC)
		if err != nil {
			h.logger.Warn("GET /healers/{id}/bookings - Invalid end date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		// Конец периода включает весь указанный день
		end = end.Add(24 * time.Hour)
		req.EndDate = &end
	}
	req.IncludeInactive = query.Get("includeInactive") == "true"

	result, err := h.service.GetHealerBookings(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /healers/{id}/bookings - Invalid period: healer_id=%d", healerID)
			handlers.RespondBadRequest(w, msgInvalidPeriod)

		default:
			h.logger.Error("GET /healers/{id}/bookings - Failed: healer_id=%d, error=%v", healerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /healers/{id}/bookings - %d bookings retrieved for healer_id=%d",
		len(result.Bookings), healerID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
