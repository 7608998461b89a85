package validate_slot

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-WellnessBooking/internal/api/handlers"
	validateSlot "github.com/m04kA/SMC-WellnessBooking/internal/usecase/validate_slot"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTime        = "некорректный формат времени, ожидается RFC 3339"
)

type Handler struct {
	useCase ValidateSlotUseCase
	logger  Logger
}

func NewHandler(useCase ValidateSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/slots/validate
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req ValidateSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /slots/validate - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /slots/validate - Failed to parse scheduled_at: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, validateSlot.ErrInvalidInput):
			h.logger.Warn("POST /slots/validate - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /slots/validate - Failed: healer_id=%d, error=%v", req.HealerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /slots/validate - Slot checked: healer_id=%d, valid=%t", req.HealerID, result.Valid)
	handlers.RespondJSON(w, http.StatusOK, ValidateSlotResponse{
		Valid: result.Valid,
		Error: result.Error,
	})
}
