package reschedule_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-WellnessBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-WellnessBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-WellnessBooking/internal/usecase/validate_slot"
)

// UseCase use case переноса бронирования
// Перенос допускается, только если и старое, и новое время отстоят
// от текущего момента не менее чем на 24 часа, а новый слот проходит
// полную проверку валидатора
type UseCase struct {
	bookingRepo  BookingRepository
	validator    SlotValidator
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	validator SlotValidator,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		validator:    validator,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case переноса бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleBooking: user=%d, booking=%d, new_time=%s",
		req.UserID, req.BookingID, req.NewScheduledAt.Format(time.RFC3339))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	minLead := domain.ModificationNoticeHours * time.Hour

	var result *domain.Booking

	// 2. Проверяем и переносим в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("RescheduleBooking: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("RescheduleBooking: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		// Чужое бронирование не раскрываем, отвечаем как на отсутствующее
		if booking.UserID != req.UserID {
			uc.logger.Warn("RescheduleBooking: booking id=%d belongs to another user", booking.ID)
			return ErrBookingNotFound
		}

		if !booking.CanBeRescheduled() {
			uc.logger.Warn("RescheduleBooking: booking id=%d in terminal status %s", booking.ID, booking.Status)
			return ErrNotReschedulable
		}

		// Лимит 24 часа должны проходить оба времени: старое и новое
		if booking.LeadTime(now) < minLead {
			uc.logger.Warn("RescheduleBooking: booking id=%d starts too soon", booking.ID)
			return ErrTooCloseToStart
		}
		if req.NewScheduledAt.Sub(now) < minLead {
			uc.logger.Warn("RescheduleBooking: new time for booking id=%d is too soon", booking.ID)
			return ErrTooCloseToStart
		}

		// Новый слот проходит полную проверку, само бронирование
		// из проверки пересечений исключается
		check, err := uc.validator.Check(txCtx, booking.HealerID, booking.ServiceID, req.NewScheduledAt, now, &booking.ID)
		if err != nil {
			uc.logger.Error("RescheduleBooking: slot check failed: %v", err)
			return fmt.Errorf("%w: slot check failed: %v", ErrInternal, err)
		}
		if !check.Valid {
			uc.logger.Warn("RescheduleBooking: new slot rejected for booking id=%d: %s", booking.ID, check.Reason)
			return reasonToError(check.Reason)
		}

		result, err = uc.bookingRepo.Reschedule(txCtx, booking.ID, req.NewScheduledAt.UTC())
		if err != nil {
			uc.logger.Error("RescheduleBooking: failed to reschedule booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to reschedule booking: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("RescheduleBooking: booking id=%d moved to %s",
		result.ID, result.ScheduledAt.Format(time.RFC3339))

	return &Response{
		ID:              result.ID,
		UserID:          result.UserID,
		HealerID:        result.HealerID,
		ServiceID:       result.ServiceID,
		ScheduledAt:     result.ScheduledAt,
		DurationMinutes: result.DurationMinutes,
		PricePaise:      result.PricePaise,
		Status:          string(result.Status),
		ServiceName:     result.ServiceName,
		HealerName:      result.HealerName,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}

// reasonToError конвертирует причину отказа валидатора в доменную ошибку
func reasonToError(reason string) error {
	switch reason {
	case validate_slot.MsgPastTime:
		return ErrPastTime
	case validate_slot.MsgMisaligned:
		return ErrMisaligned
	case validate_slot.MsgHealerNotFound, validate_slot.MsgServiceNotFound:
		return ErrNotReschedulable
	case validate_slot.MsgOutsideWindow:
		return ErrHealerUnavailable
	case validate_slot.MsgSlotTaken:
		return ErrSlotNotAvailable
	default:
		return fmt.Errorf("%w: %s", ErrInvalidInput, reason)
	}
}

// validateRequest проверяет корректность входных данных
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: user id must be positive", ErrInvalidInput)
	}
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: booking id must be positive", ErrInvalidInput)
	}
	if req.NewScheduledAt.IsZero() {
		return fmt.Errorf("%w: new scheduled_at is required", ErrInvalidInput)
	}
	return nil
}
