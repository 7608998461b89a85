package get_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-WellnessBooking/internal/domain"
	healerRepo "github.com/m04kA/SMC-WellnessBooking/internal/infra/storage/healer"
)

// UseCase use case для получения расписания мастера на день
type UseCase struct {
	bookingRepo  BookingRepository
	healerRepo   HealerRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	healerRepo HealerRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		healerRepo:   healerRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения слотов на день
// Чтение без побочных эффектов, безопасно вызывать повторно
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailability: healer=%d, date=%s", req.HealerID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем мастера
	// Отсутствующий или неактивный мастер - это пустое расписание, а не ошибка
	healer, err := uc.healerRepo.GetByID(ctx, req.HealerID)
	if err != nil {
		if errors.Is(err, healerRepo.ErrHealerNotFound) {
			uc.logger.Info("GetAvailability: healer id=%d not found, returning empty day", req.HealerID)
			return emptyDay(req), nil
		}
		uc.logger.Error("GetAvailability: failed to get healer id=%d: %v", req.HealerID, err)
		return nil, fmt.Errorf("%w: failed to get healer: %v", ErrInternal, err)
	}

	if !healer.IsActive {
		uc.logger.Info("GetAvailability: healer id=%d is inactive, returning empty day", req.HealerID)
		return emptyDay(req), nil
	}

	// 3. Окно доступности мастера на этот день недели
	window, hasWindow := healer.WindowFor(req.Date.Weekday())

	// 4. Генерируем каноническую сетку слотов
	grid := domain.GenerateDaySlots(domain.DefaultDayStartHour, domain.DefaultDayEndHour)

	// 5. Получаем активные бронирования мастера на эту дату
	dayStart := time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.Add(24 * time.Hour)

	bookings, err := uc.bookingRepo.GetByHealerAndRange(ctx, req.HealerID, dayStart, dayEnd, true)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 6. Вычисляем доступность каждого слота
	slots := make([]Slot, 0, len(grid))
	for _, start := range grid {
		slot := Slot{StartTime: start, Available: false}

		if hasWindow && window.Contains(start) {
			// Метки канонической сетки всегда валидны
			startMinutes, _ := start.Minutes()
			slotStart := dayStart.Add(time.Duration(startMinutes) * time.Minute)
			// При чтении расписания используется фиксированная длительность пробы,
			// реальная длительность услуги проверяется при создании бронирования
			slotEnd := slotStart.Add(domain.DefaultProbeDurationMinutes * time.Minute)

			slot.Available = true
			for _, b := range bookings {
				if b.Overlaps(slotStart, slotEnd) {
					slot.Available = false
					slot.BookingID = &b.ID
					break
				}
			}
		}

		slots = append(slots, slot)
	}

	uc.logger.Info("GetAvailability: healer=%d, date=%s, %d slots generated",
		req.HealerID, req.Date.Format(domain.DateFormat), len(slots))

	return &Response{
		HealerID: req.HealerID,
		Date:     req.Date,
		Slots:    slots,
	}, nil
}

// emptyDay формирует ответ без единого доступного слота
func emptyDay(req *Request) *Response {
	return &Response{
		HealerID: req.HealerID,
		Date:     req.Date,
		Slots:    []Slot{},
	}
}

// validateRequest проверяет корректность входных данных
func validateRequest(req *Request) error {
	if req.HealerID <= 0 {
		return fmt.Errorf("%w: healer id must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	return nil
}
