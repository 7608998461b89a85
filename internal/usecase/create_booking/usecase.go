package create_booking

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-WellnessBooking/internal/domain"
	"github.com/m04kA/SMC-WellnessBooking/internal/integrations/paygateway"
	"github.com/m04kA/SMC-WellnessBooking/internal/usecase/validate_slot"
)

const orderCurrency = "INR"

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	paymentRepo  PaymentRepository
	validator    SlotValidator
	gateway      GatewayClient
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	paymentRepo PaymentRepository,
	validator SlotValidator,
	gateway GatewayClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		paymentRepo:  paymentRepo,
		validator:    validator,
		gateway:      gateway,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
// Проверка слота и вставка выполняются в одной сериализуемой транзакции,
// что закрывает гонку между двумя одновременными запросами на один слот
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, healer=%d, service=%d, scheduled_at=%s",
		req.UserID, req.HealerID, req.ServiceID, req.ScheduledAt.Format(time.RFC3339))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	var result *domain.Booking

	// 3. Проверяем слот и создаем бронирование в сериализуемой транзакции
	// Скан конфликтов внутри транзакции блокирует строки (FOR UPDATE)
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		check, err := uc.validator.Check(txCtx, req.HealerID, req.ServiceID, req.ScheduledAt, now, nil)
		if err != nil {
			uc.logger.Error("CreateBooking: slot check failed: %v", err)
			return fmt.Errorf("%w: slot check failed: %v", ErrInternal, err)
		}

		if !check.Valid {
			uc.logger.Warn("CreateBooking: slot rejected for healer=%d, scheduled_at=%s: %s",
				req.HealerID, req.ScheduledAt.Format(time.RFC3339), check.Reason)
			return reasonToError(check.Reason)
		}

		// Снимок длительности и цены услуги на момент создания
		booking := &domain.Booking{
			UserID:          req.UserID,
			HealerID:        req.HealerID,
			ServiceID:       req.ServiceID,
			ScheduledAt:     req.ScheduledAt.UTC(),
			DurationMinutes: check.Service.DurationMinutes,
			PricePaise:      check.Service.PricePaise,
			Status:          domain.StatusPending,
			ServiceName:     check.Service.Name,
			HealerName:      check.Healer.Name,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)

	resp := &Response{
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
		CreatedAt:       result.CreatedAt,
	}

	// 4. Создаем заказ в шлюзе и pending-платеж
	// Сбой шлюза не откатывает бронирование: оно остается PENDING,
	// оплата кредитами или повторная попытка остаются доступными
	order, err := uc.createPaymentOrder(ctx, result)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to create payment order for booking id=%d: %v", result.ID, err)
		return resp, nil
	}

	resp.PaymentOrder = order
	return resp, nil
}

// createPaymentOrder создает заказ в платежном шлюзе и pending-платеж в БД
func (uc *UseCase) createPaymentOrder(ctx context.Context, booking *domain.Booking) (*PaymentOrder, error) {
	order, err := uc.gateway.CreateOrder(ctx, &paygateway.CreateOrderRequest{
		AmountPaise: booking.PricePaise,
		Currency:    orderCurrency,
		Receipt:     fmt.Sprintf("booking_%d", booking.ID),
		Notes: map[string]string{
			"booking_id": fmt.Sprintf("%d", booking.ID),
		},
	})
	if err != nil {
		return nil, err
	}

	payment := &domain.Payment{
		BookingID:      &booking.ID,
		AmountPaise:    booking.PricePaise,
		Status:         domain.PaymentStatusPending,
		GatewayOrderID: order.ID,
	}

	if _, err := uc.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}

	return &PaymentOrder{
		OrderID:     order.ID,
		AmountPaise: order.AmountPaise,
		Currency:    order.Currency,
	}, nil
}

// reasonToError конвертирует причину отказа валидатора в доменную ошибку
func reasonToError(reason string) error {
	switch reason {
	case validate_slot.MsgPastTime:
		return ErrPastTime
	case validate_slot.MsgMisaligned:
		return ErrMisaligned
	case validate_slot.MsgHealerNotFound:
		return ErrHealerNotFound
	case validate_slot.MsgServiceNotFound:
		return ErrServiceNotFound
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
