package confirm_with_credits

import (
	"context"

	confirmWithCredits "github.com/m04kA/SMC-WellnessBooking/internal/usecase/confirm_with_credits"
)

type ConfirmWithCreditsUseCase interface {
	Execute(ctx context.Context, req *confirmWithCredits.Request) (*confirmWithCredits.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
