package validate_slot

import (
	"time"

	validateSlot "github.com/m04kA/SMC-WellnessBooking/internal/usecase/validate_slot"
)

// ValidateSlotRequest HTTP request model
type ValidateSlotRequest struct {
	HealerID    int64  `json:"healerId"`
	ServiceID   int64  `json:"serviceId"`
	ScheduledAt string `json:"scheduledAt"` // RFC 3339
}

// ValidateSlotResponse HTTP response model
type ValidateSlotResponse struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ValidateSlotRequest) ToUseCaseRequest() (*validateSlot.Request, error) {
	scheduledAt, err := time.Parse(time.RFC3339, r.ScheduledAt)
	if err != nil {
		return nil, err
	}

	return &validateSlot.Request{
		HealerID:    r.HealerID,
		ServiceID:   r.ServiceID,
		ScheduledAt: scheduledAt.UTC(),
	}, nil
}
