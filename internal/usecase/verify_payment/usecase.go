package verify_payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-WellnessBooking/internal/domain"
	"github.com/m04kA/SMC-WellnessBooking/internal/infra/events"
	paymentRepo "github.com/m04kA/SMC-WellnessBooking/internal/infra/storage/payment"
	"github.com/m04kA/SMC-WellnessBooking/internal/integrations/paygateway"
)

// UseCase use case подтверждения оплаты после прямого checkout
// Идемпотентен: повторное подтверждение уже оплаченного заказа
// не меняет состояние и возвращает AlreadyVerified
type UseCase struct {
	paymentRepo PaymentRepository
	bookingRepo BookingRepository
	publisher   EventPublisher
	txManager   TransactionManager
	keySecret   string
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	paymentRepo PaymentRepository,
	bookingRepo BookingRepository,
	publisher EventPublisher,
	txManager TransactionManager,
	keySecret string,
	logger Logger,
) *UseCase {
	return &UseCase{
		paymentRepo: paymentRepo,
		bookingRepo: bookingRepo,
		publisher:   publisher,
		txManager:   txManager,
		keySecret:   keySecret,
		logger:      logger,
	}
}

// Execute выполняет use case подтверждения оплаты
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("VerifyPayment: user=%d, order=%s, payment=%s",
		req.UserID, req.GatewayOrderID, req.GatewayPaymentID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("VerifyPayment: validation failed: %v", err)
		return nil, err
	}

	// 2. Сверяем подпись HMAC-SHA256 над "orderId|paymentId"
	if !paygateway.VerifyCheckoutSignature(req.GatewayOrderID, req.GatewayPaymentID, req.Signature, uc.keySecret) {
		uc.logger.Warn("VerifyPayment: signature mismatch for order=%s", req.GatewayOrderID)
		return nil, ErrInvalidSignature
	}

	var (
		payment *domain.Payment
		flipped bool
		booking *domain.Booking
	)

	// 3. Переводим платеж в success и подтверждаем бронирование атомарно
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		var err error
		payment, err = uc.paymentRepo.GetByGatewayOrderID(txCtx, req.GatewayOrderID)
		if err != nil {
			if errors.Is(err, paymentRepo.ErrPaymentNotFound) {
				uc.logger.Warn("VerifyPayment: payment for order=%s not found", req.GatewayOrderID)
				return ErrPaymentNotFound
			}
			uc.logger.Error("VerifyPayment: failed to get payment for order=%s: %v", req.GatewayOrderID, err)
			return fmt.Errorf("%w: failed to get payment: %v", ErrInternal, err)
		}

		flipped, err = uc.paymentRepo.MarkSuccess(txCtx, payment.ID, &req.GatewayPaymentID, &req.Signature)
		if err != nil {
			uc.logger.Error("VerifyPayment: failed to mark payment id=%d success: %v", payment.ID, err)
			return fmt.Errorf("%w: failed to mark payment success: %v", ErrInternal, err)
		}

		if payment.BookingID == nil {
			return nil
		}

		booking, err = uc.bookingRepo.GetByID(txCtx, *payment.BookingID)
		if err != nil {
			uc.logger.Error("VerifyPayment: failed to get booking id=%d: %v", *payment.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		// Чужое бронирование не раскрываем, отвечаем как на отсутствующее
		if booking.UserID != req.UserID {
			uc.logger.Warn("VerifyPayment: booking id=%d belongs to another user", booking.ID)
			return ErrBookingNotFound
		}

		if flipped && booking.IsActive() && !booking.IsConfirmed() {
			if err := uc.bookingRepo.UpdateStatus(txCtx, booking.ID, domain.StatusConfirmed); err != nil {
				uc.logger.Error("VerifyPayment: failed to confirm booking id=%d: %v", booking.ID, err)
				return fmt.Errorf("%w: failed to confirm booking: %v", ErrInternal, err)
			}
			booking.Status = domain.StatusConfirmed
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	// 4. События публикуются только при фактическом переходе платежа
	if flipped {
		uc.publisher.Publish(ctx, events.KeyPaymentCaptured, events.PaymentCaptured{
			PaymentID:        payment.ID,
			BookingID:        payment.BookingID,
			GatewayPaymentID: req.GatewayPaymentID,
			AmountPaise:      payment.AmountPaise,
		})
		if booking != nil {
			uc.publisher.Publish(ctx, events.KeyBookingConfirmed, events.BookingConfirmed{
				BookingID:   booking.ID,
				UserID:      booking.UserID,
				HealerID:    booking.HealerID,
				ServiceID:   booking.ServiceID,
				ScheduledAt: booking.ScheduledAt,
				PaidWith:    "gateway",
			})
		}
	}

	uc.logger.Info("VerifyPayment: order=%s verified, flipped=%t", req.GatewayOrderID, flipped)

	resp := &Response{
		Verified:        true,
		AlreadyVerified: !flipped,
		BookingID:       payment.BookingID,
	}
	if booking != nil {
		resp.BookingStatus = string(booking.Status)
	}
	return resp, nil
}

// validateRequest проверяет корректность входных данных
func validateRequest(req *Request) error {
	if req.GatewayOrderID == "" {
		return fmt.Errorf("%w: order id is required", ErrInvalidInput)
	}
	if req.GatewayPaymentID == "" {
		return fmt.Errorf("%w: payment id is required", ErrInvalidInput)
	}
	if req.Signature == "" {
		return fmt.Errorf("%w: signature is required", ErrInvalidInput)
	}
	return nil
}
