package confirm_with_credits

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-WellnessBooking/internal/domain"
	"github.com/m04kA/SMC-WellnessBooking/internal/infra/events"
	bookingRepo "github.com/m04kA/SMC-WellnessBooking/internal/infra/storage/booking"
	creditRepo "github.com/m04kA/SMC-WellnessBooking/internal/infra/storage/membership"
)

// UseCase use case подтверждения бронирования VIP кредитом
// Списание кредита и смена статуса атомарны в сериализуемой транзакции
type UseCase struct {
	bookingRepo BookingRepository
	creditRepo  CreditRepository
	publisher   EventPublisher
	txManager   TransactionManager
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	creditRepo CreditRepository,
	publisher EventPublisher,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		creditRepo:  creditRepo,
		publisher:   publisher,
		txManager:   txManager,
		logger:      logger,
	}
}

// Execute выполняет use case подтверждения кредитом
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ConfirmWithCredits: user=%d, booking=%d", req.UserID, req.BookingID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ConfirmWithCredits: validation failed: %v", err)
		return nil, err
	}

	var (
		booking   *domain.Booking
		remaining int
		already   bool
	)

	// 2. Списываем кредит и подтверждаем бронирование в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		var err error
		booking, err = uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("ConfirmWithCredits: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("ConfirmWithCredits: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		// Чужое бронирование не раскрываем, отвечаем как на отсутствующее
		if booking.UserID != req.UserID {
			uc.logger.Warn("ConfirmWithCredits: booking id=%d belongs to another user", booking.ID)
			return ErrBookingNotFound
		}

		// Повторное подтверждение не списывает второй кредит
		if booking.IsConfirmed() {
			already = true
			return nil
		}

		if !booking.IsActive() {
			uc.logger.Warn("ConfirmWithCredits: booking id=%d in terminal status %s", booking.ID, booking.Status)
			return ErrNotConfirmable
		}

		credit, err := uc.creditRepo.GetAvailableCreditByUser(txCtx, req.UserID)
		if err != nil {
			if errors.Is(err, creditRepo.ErrCreditNotFound) {
				uc.logger.Warn("ConfirmWithCredits: user id=%d has no credits", req.UserID)
				return ErrNoCredits
			}
			uc.logger.Error("ConfirmWithCredits: failed to get credits for user id=%d: %v", req.UserID, err)
			return fmt.Errorf("%w: failed to get credits: %v", ErrInternal, err)
		}

		if err := uc.creditRepo.ConsumeCredit(txCtx, credit.ID); err != nil {
			if errors.Is(err, creditRepo.ErrNoCreditsLeft) {
				return ErrNoCredits
			}
			uc.logger.Error("ConfirmWithCredits: failed to consume credit id=%d: %v", credit.ID, err)
			return fmt.Errorf("%w: failed to consume credit: %v", ErrInternal, err)
		}

		if err := uc.bookingRepo.UpdateStatus(txCtx, booking.ID, domain.StatusConfirmed); err != nil {
			uc.logger.Error("ConfirmWithCredits: failed to confirm booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to confirm booking: %v", ErrInternal, err)
		}

		booking.Status = domain.StatusConfirmed
		remaining = credit.Remaining() - 1
		return nil
	})

	if err != nil {
		return nil, err
	}

	if already {
		uc.logger.Info("ConfirmWithCredits: booking id=%d already confirmed", booking.ID)
		return &Response{
			BookingID:        booking.ID,
			Status:           string(booking.Status),
			AlreadyConfirmed: true,
		}, nil
	}

	// 3. Событие подтверждения, вне транзакции
	uc.publisher.Publish(ctx, events.KeyBookingConfirmed, events.BookingConfirmed{
		BookingID:   booking.ID,
		UserID:      booking.UserID,
		HealerID:    booking.HealerID,
		ServiceID:   booking.ServiceID,
		ScheduledAt: booking.ScheduledAt,
		PaidWith:    "credits",
	})

	uc.logger.Info("ConfirmWithCredits: booking id=%d confirmed, credits remaining=%d", booking.ID, remaining)

	return &Response{
		BookingID:        booking.ID,
		Status:           string(booking.Status),
		CreditsRemaining: remaining,
	}, nil
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
