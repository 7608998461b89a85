package get_healer_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-WellnessBooking/internal/api/handlers"
	"github.com/m04kA/SMC-WellnessBooking/internal/service/healers"
)

const (
	msgInvalidHealerID = "некорректный ID мастера"
	msgHealerNotFound  = "мастер не найден"
)

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

// Handle GET /api/v1/healers/{healerId}/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	healerID, err := strconv.ParseInt(vars["healerId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /healers/{id}/availability - Invalid healer ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidHealerID)
		return
	}

	result, err := h.service.GetAvailability(r.Context(), healerID)
	if err != nil {
		switch {
		case errors.Is(err, healers.ErrHealerNotFound):
			h.logger.Warn("GET /healers/{id}/availability - Healer not found: healer_id=%d", healerID)
			handlers.RespondNotFound(w, msgHealerNotFound)

		default:
			h.logger.Error("GET /healers/{id}/availability - Failed: healer_id=%d, error=%v", healerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /healers/{id}/availability - Availability fetched: healer_id=%d", healerID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
