package validate_slot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-WellnessBooking/internal/domain"
	healerRepo "github.com/m04kA/SMC-WellnessBooking/internal/infra/storage/healer"
	serviceRepo "github.com/m04kA/SMC-WellnessBooking/internal/infra/storage/service"
	"github.com/m04kA/SMC-WellnessBooking/pkg/types"
)

// UseCase use case для проверки доступности слота перед бронированием
// Повторно вызывается при создании бронирования для закрытия гонки
// между просмотром расписания и самим бронированием
type UseCase struct {
	bookingRepo  BookingRepository
	healerRepo   HealerRepository
	serviceRepo  ServiceRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	healerRepo HealerRepository,
	serviceRepo ServiceRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		healerRepo:   healerRepo,
		serviceRepo:  serviceRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case проверки слота
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ValidateSlot: healer=%d, service=%d, scheduled_at=%s",
		req.HealerID, req.ServiceID, req.ScheduledAt.Format(time.RFC3339))

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ValidateSlot: validation failed: %v", err)
		return nil, err
	}

	result, err := uc.Check(ctx, req.HealerID, req.ServiceID, req.ScheduledAt, uc.timeProvider.Now(), nil)
	if err != nil {
		return nil, err
	}

	if !result.Valid {
		uc.logger.Info("ValidateSlot: healer=%d, service=%d, scheduled_at=%s rejected: %s",
			req.HealerID, req.ServiceID, req.ScheduledAt.Format(time.RFC3339), result.Reason)
		return &Response{Valid: false, Error: result.Reason}, nil
	}

	return &Response{Valid: true}, nil
}

// Check выполняет проверки слота по порядку, останавливаясь на первой ошибке:
//  1. время строго в будущем
//  2. выравнивание по 30-минутной сетке
//  3. мастер существует и активен
//  4. услуга существует и активна
//  5. время попадает в окно доступности мастера
//  6. нет пересечений с активными бронированиями в окне +-2 часа
//     (с реальной длительностью услуги)
//
// excludeBookingID исключает бронирование из проверки пересечений
// (используется при переносе)
func (uc *UseCase) Check(
	ctx context.Context,
	healerID, serviceID int64,
	scheduledAt time.Time,
	now time.Time,
	excludeBookingID *int64,
) (*CheckResult, error) {
	// 1. Время строго в будущем
	if !scheduledAt.After(now) {
		return &CheckResult{Reason: MsgPastTime}, nil
	}

	// 2. Выравнивание по 30-минутной сетке
	if scheduledAt.Minute()%domain.SlotStepMinutes != 0 || scheduledAt.Second() != 0 || scheduledAt.Nanosecond() != 0 {
		return &CheckResult{Reason: MsgMisaligned}, nil
	}

	// 3. Мастер существует и активен
	healer, err := uc.healerRepo.GetByID(ctx, healerID)
	if err != nil {
		if errors.Is(err, healerRepo.ErrHealerNotFound) {
			return &CheckResult{Reason: MsgHealerNotFound}, nil
		}
		uc.logger.Error("ValidateSlot: failed to get healer id=%d: %v", healerID, err)
		return nil, fmt.Errorf("%w: failed to get healer: %v", ErrInternal, err)
	}
	if !healer.IsActive {
		return &CheckResult{Reason: MsgHealerNotFound, Healer: healer}, nil
	}

	// 4. Услуга существует и активна
	service, err := uc.serviceRepo.GetByID(ctx, serviceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			return &CheckResult{Reason: MsgServiceNotFound, Healer: healer}, nil
		}
		uc.logger.Error("ValidateSlot: failed to get service id=%d: %v", serviceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !service.IsActive {
		return &CheckResult{Reason: MsgServiceNotFound, Healer: healer, Service: service}, nil
	}

	// 5. Время попадает в окно доступности мастера
	scheduledAt = scheduledAt.UTC()
	window, ok := healer.WindowFor(scheduledAt.Weekday())
	if !ok || !window.Contains(types.NewTimeString(scheduledAt)) {
		return &CheckResult{Reason: MsgOutsideWindow, Healer: healer, Service: service}, nil
	}

	// 6. Проверка пересечений с активными бронированиями в окне +-2 часа
	// с реальной длительностью услуги
	scanFrom := scheduledAt.Add(-domain.ConflictScanWindowMinutes * time.Minute)
	scanTo := scheduledAt.Add(domain.ConflictScanWindowMinutes * time.Minute)

	bookings, err := uc.bookingRepo.GetByHealerAndRange(ctx, healerID, scanFrom, scanTo, true)
	if err != nil {
		uc.logger.Error("ValidateSlot: failed to get bookings for healer id=%d: %v", healerID, err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	proposedEnd := scheduledAt.Add(time.Duration(service.DurationMinutes) * time.Minute)
	for _, b := range bookings {
		if excludeBookingID != nil && b.ID == *excludeBookingID {
			continue
		}
		if b.Overlaps(scheduledAt, proposedEnd) {
			return &CheckResult{Reason: MsgSlotTaken, Healer: healer, Service: service}, nil
		}
	}

	return &CheckResult{Valid: true, Healer: healer, Service: service}, nil
}

// validateRequest проверяет корректность входных данных
func validateRequest(req *Request) error {
	if req.HealerID <= 0 {
		return fmt.Errorf("%w: healer id must be positive", ErrInvalidInput)
	}
	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: service id must be positive", ErrInvalidInput)
	}
	if req.ScheduledAt.IsZero() {
		return fmt.Errorf("%w: scheduled_at is required", ErrInvalidInput)
	}
	return nil
}
