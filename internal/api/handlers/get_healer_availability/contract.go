package get_healer_availability

import (
	"context"

	"github.com/m04kA/SMC-WellnessBooking/internal/service/healers/models"
)

type HealerService interface {
	GetAvailability(ctx context.Context, healerID int64) (*models.AvailabilityResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
