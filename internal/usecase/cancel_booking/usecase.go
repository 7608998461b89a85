package cancel_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-WellnessBooking/internal/domain"
	"github.com/m04kA/SMC-WellnessBooking/internal/infra/events"
	bookingRepo "github.com/m04kA/SMC-WellnessBooking/internal/infra/storage/booking"
	paymentRepo "github.com/m04kA/SMC-WellnessBooking/internal/infra/storage/payment"
	refundRepo "github.com/m04kA/SMC-WellnessBooking/internal/infra/storage/refund"
	"github.com/m04kA/SMC-WellnessBooking/internal/integrations/paygateway"
	"github.com/m04kA/SMC-WellnessBooking/pkg/ptr"
)

// UseCase use case отмены бронирования с полосами возврата
// Отмена допускается в любой момент, короткое уведомление снижает
// полосу возврата вместо отказа в отмене
type UseCase struct {
	bookingRepo    BookingRepository
	paymentRepo    PaymentRepository
	refundRepo     RefundRepository
	gateway        GatewayClient
	publisher      EventPublisher
	txManager      TransactionManager
	refundsEnabled bool
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	paymentRepo PaymentRepository,
	refundRepo RefundRepository,
	gateway GatewayClient,
	publisher EventPublisher,
	txManager TransactionManager,
	refundsEnabled bool,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:    bookingRepo,
		paymentRepo:    paymentRepo,
		refundRepo:     refundRepo,
		gateway:        gateway,
		publisher:      publisher,
		txManager:      txManager,
		refundsEnabled: refundsEnabled,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// Execute выполняет use case отмены бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelBooking: user=%d, booking=%d", req.UserID, req.BookingID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CancelBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	var (
		booking  *domain.Booking
		payment  *domain.Payment
		decision domain.RefundDecision
		already  bool
	)

	// 2. Отменяем бронирование атомарно
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		var err error
		booking, err = uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("CancelBooking: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("CancelBooking: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		// Чужое бронирование не раскрываем, отвечаем как на отсутствующее
		if booking.UserID != req.UserID {
			uc.logger.Warn("CancelBooking: booking id=%d belongs to another user", booking.ID)
			return ErrBookingNotFound
		}

		// Повторная отмена идемпотентна: возврат второй раз не выдается
		if booking.IsCancelled() {
			already = true
			return nil
		}

		if booking.IsCompleted() {
			uc.logger.Warn("CancelBooking: booking id=%d already completed", booking.ID)
			return ErrNotCancellable
		}

		// Полоса возврата по времени до начала сеанса
		decision = domain.ComputeRefund(booking.ScheduledAt, now, booking.PricePaise)

		// Без успешного платежа деньги не возвращаются (оплата кредитами),
		// полоса при этом сообщается для наблюдаемости
		payment, err = uc.paymentRepo.GetByBookingID(txCtx, booking.ID)
		if err != nil {
			if !errors.Is(err, paymentRepo.ErrPaymentNotFound) {
				uc.logger.Error("CancelBooking: failed to get payment for booking id=%d: %v", booking.ID, err)
				return fmt.Errorf("%w: failed to get payment: %v", ErrInternal, err)
			}
			payment = nil
		}
		if payment == nil || !payment.IsSuccess() {
			decision.RefundPaise = 0
		}

		if err := uc.bookingRepo.Cancel(txCtx, booking.ID, req.Reason); err != nil {
			uc.logger.Error("CancelBooking: failed to cancel booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to cancel booking: %v", ErrInternal, err)
		}

		booking.Status = domain.StatusCancelled
		return nil
	})

	if err != nil {
		return nil, err
	}

	if already {
		uc.logger.Info("CancelBooking: booking id=%d already cancelled", booking.ID)
		return &Response{
			BookingID:        booking.ID,
			Status:           string(booking.Status),
			AlreadyCancelled: true,
		}, nil
	}

	refundInfo := &RefundInfo{
		Band:        string(decision.Band),
		RefundPaise: decision.RefundPaise,
	}

	// 3. Выдача возврата вне транзакции отмены
	// Ошибки шлюза логируются и не отменяют отмену, леджер
	// досверяется операторами
	if decision.RefundPaise > 0 && payment != nil {
		refund := uc.issueRefund(ctx, payment, decision.RefundPaise)
		if refund != nil {
			refundInfo.Status = string(refund.Status)
			uc.publisher.Publish(ctx, events.KeyRefundIssued, events.RefundIssued{
				RefundID:    refund.ID,
				PaymentID:   refund.PaymentID,
				AmountPaise: refund.AmountPaise,
				Status:      string(refund.Status),
			})
		}
	}

	// 4. Событие отмены
	uc.publisher.Publish(ctx, events.KeyBookingCancelled, events.BookingCancelled{
		BookingID:   booking.ID,
		UserID:      booking.UserID,
		RefundBand:  string(decision.Band),
		RefundPaise: decision.RefundPaise,
	})

	uc.logger.Info("CancelBooking: booking id=%d cancelled, band=%s, refund=%d",
		booking.ID, decision.Band, decision.RefundPaise)

	return &Response{
		BookingID: booking.ID,
		Status:    string(booking.Status),
		Refund:    refundInfo,
	}, nil
}

// issueRefund выдает возврат по платежу, если такой же еще не записан
// При выключенном фиче-флаге возвратов пишет в леджер строку simulated,
// чтобы леджер оставался согласованным между окружениями
func (uc *UseCase) issueRefund(ctx context.Context, payment *domain.Payment, amountPaise int64) *domain.Refund {
	existing, err := uc.refundRepo.FindByPaymentAndAmount(ctx, payment.ID, amountPaise)
	if err != nil && !errors.Is(err, refundRepo.ErrRefundNotFound) {
		uc.logger.Error("CancelBooking: failed to check existing refund for payment id=%d: %v", payment.ID, err)
		return nil
	}
	if existing != nil {
		uc.logger.Info("CancelBooking: refund for payment id=%d amount=%d already recorded", payment.ID, amountPaise)
		return existing
	}

	refund := &domain.Refund{
		PaymentID:   payment.ID,
		AmountPaise: amountPaise,
	}

	if !uc.refundsEnabled {
		refund.Status = domain.RefundStatusSimulated
	} else {
		if payment.GatewayPaymentID == nil {
			uc.logger.Error("CancelBooking: payment id=%d has no gateway payment id, refund skipped", payment.ID)
			return nil
		}

		result, err := uc.gateway.CreateRefund(ctx, *payment.GatewayPaymentID, &paygateway.CreateRefundRequest{
			AmountPaise: amountPaise,
			Notes: map[string]string{
				"payment_id": fmt.Sprintf("%d", payment.ID),
			},
		})
		if err != nil {
			uc.logger.Error("CancelBooking: gateway refund failed for payment id=%d: %v", payment.ID, err)
			return nil
		}

		refund.Status = domain.RefundStatusPending
		refund.GatewayRefundID = ptr.Ptr(result.GatewayRefundID)
	}

	created, err := uc.refundRepo.Create(ctx, refund)
	if err != nil {
		uc.logger.Error("CancelBooking: failed to persist refund for payment id=%d: %v", payment.ID, err)
		return nil
	}

	return created
}

// validateRequest проверяет корректность входных данных
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: user id must be positive", ErrInvalidInput)
	}
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: booking id must be positive", ErrInvalidInput)
	}
	return nil
}
