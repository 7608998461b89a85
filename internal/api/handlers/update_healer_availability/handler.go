package update_healer_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-WellnessBooking/internal/api/handlers"
	"github.com/m04kA/SMC-WellnessBooking/internal/api/middleware"
	"github.com/m04kA/SMC-WellnessBooking/internal/service/healers"
	"github.com/m04kA/SMC-WellnessBooking/internal/service/healers/models"
)

const (
	msgInvalidHealerID     = "некорректный ID мастера"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidAvailability = "некорректное расписание"
	msgHealerNotFound      = "мастер не найден"
	msgAccessDenied        = "нет доступа к расписанию мастера"
	msgMissingUserID       = "отсутствует ID пользователя"
)

// UpdateAvailabilityRequest HTTP request model
type UpdateAvailabilityRequest struct {
	Availability map[string]models.DayWindowDTO `json:"availability"`
}

type Handler struct {
	service HealerService
	logger  Logger
}

func NewHandler(service HealerService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/healers/{healerId}/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	healerID, err := strconv.ParseInt(vars["healerId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /healers/{id}/availability - Invalid healer ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidHealerID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /healers/{id}/availability - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateAvailabilityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /healers/{id}/availability - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateAvailability(r.Context(), healerID, &models.UpdateAvailabilityRequest{
		UserID:       userID,
		Availability: req.Availability,
	})
	if err != nil {
		switch {
		case errors.Is(err, healers.ErrHealerNotFound):
			h.logger.Warn("PUT /healers/{id}/availability - Healer not found: healer_id=%d", healerID)
			handlers.RespondNotFound(w, msgHealerNotFound)

		case errors.Is(err, healers.ErrAccessDenied):
			h.logger.Warn("PUT /healers/{id}/availability - Access denied: healer_id=%d, user_id=%d", healerID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, healers.ErrInvalidInput):
			h.logger.Warn("PUT /healers/{id}/availability - Invalid availability: healer_id=%d, error=%v", healerID, err)
			handlers.RespondBadRequest(w, msgInvalidAvailability)

		default:
			h.logger.Error("PUT /healers/{id}/availability - Failed: healer_id=%d, error=%v", healerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /healers/{id}/availability - Availability updated: healer_id=%d, days=%d",
		healerID, len(result.Availability))
	handlers.RespondJSON(w, http.StatusOK, result)
}
