package verify_payment

import (
	"context"

	verifyPayment "github.com/m04kA/SMC-WellnessBooking/internal/usecase/verify_payment"
)

type VerifyPaymentUseCase interface {
	Execute(ctx context.Context, req *verifyPayment.Request) (*verifyPayment.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
