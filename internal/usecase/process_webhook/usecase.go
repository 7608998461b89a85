package process_webhook

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-WellnessBooking/internal/domain"
	"github.com/m04kA/SMC-WellnessBooking/internal/infra/events"
	paymentRepo "github.com/m04kA/SMC-WellnessBooking/internal/infra/storage/payment"
	"github.com/m04kA/SMC-WellnessBooking/pkg/ptr"
)

// UseCase use case применения событий платежного шлюза
// Каждое событие применяется идемпотентно: повторная и внеочередная
// доставка не создает дубликатов и не откатывает достигнутое состояние
type UseCase struct {
	paymentRepo    PaymentRepository
	refundRepo     RefundRepository
	bookingRepo    BookingRepository
	membershipRepo MembershipRepository
	publisher      EventPublisher
	txManager      TransactionManager
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	paymentRepo PaymentRepository,
	refundRepo RefundRepository,
	bookingRepo BookingRepository,
	membershipRepo MembershipRepository,
	publisher EventPublisher,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		paymentRepo:    paymentRepo,
		refundRepo:     refundRepo,
		bookingRepo:    bookingRepo,
		membershipRepo: membershipRepo,
		publisher:      publisher,
		txManager:      txManager,
		logger:         logger,
	}
}

// Execute применяет событие шлюза
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ProcessWebhook: event=%s", req.EventType)

	var err error
	switch req.EventType {
	case EventPaymentCaptured:
		err = uc.applyPaymentCaptured(ctx, req.Payload)
	case EventPaymentFailed:
		err = uc.applyPaymentFailed(ctx, req.Payload)
	case EventRefundProcessed:
		err = uc.applyRefundProcessed(ctx, req.Payload)
	case EventSubscriptionActivated:
		err = uc.applySubscriptionTransition(ctx, req.Payload, domain.MembershipStatusActive)
	case EventSubscriptionPaused:
		err = uc.applySubscriptionTransition(ctx, req.Payload, domain.MembershipStatusPaused)
	case EventSubscriptionHalted:
		err = uc.applySubscriptionTransition(ctx, req.Payload, domain.MembershipStatusHalted)
	case EventSubscriptionCancelled:
		err = uc.applySubscriptionTransition(ctx, req.Payload, domain.MembershipStatusCancelled)
	default:
		// Незнакомые события подтверждаются без обработки
		uc.logger.Info("ProcessWebhook: ignoring unknown event type %s", req.EventType)
	}

	if err != nil {
		return nil, err
	}

	return &Response{Ok: true}, nil
}

// applyPaymentCaptured обрабатывает payment.captured
// Идемпотентность: повторная доставка не меняет уже успешный платеж,
// но дописывает gateway_payment_id, если его не было
func (uc *UseCase) applyPaymentCaptured(ctx context.Context, payload json.RawMessage) error {
	var p PaymentPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return fmt.Errorf("%w: payment.captured: %v", ErrInvalidPayload, err)
	}

	var (
		payment *domain.Payment
		booking *domain.Booking
		flipped bool
	)

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		var err error
		payment, err = uc.findPayment(txCtx, p.GatewayPaymentID, p.GatewayOrderID)
		if err != nil {
			if errors.Is(err, paymentRepo.ErrPaymentNotFound) {
				// Платеж вне нашей системы, подтверждаем и игнорируем
				uc.logger.Warn("ProcessWebhook: payment for order=%s payment=%s not found",
					p.GatewayOrderID, p.GatewayPaymentID)
				return nil
			}
			uc.logger.Error("ProcessWebhook: failed to find payment: %v", err)
			return fmt.Errorf("%w: failed to find payment: %v", ErrInternal, err)
		}

		flipped, err = uc.paymentRepo.MarkSuccess(txCtx, payment.ID, ptr.Ptr(p.GatewayPaymentID), nil)
		if err != nil {
			uc.logger.Error("ProcessWebhook: failed to mark payment id=%d success: %v", payment.ID, err)
			return fmt.Errorf("%w: failed to mark payment success: %v", ErrInternal, err)
		}

		// Дозапись ID платежа шлюза при повторной доставке
		if !flipped && payment.GatewayPaymentID == nil && p.GatewayPaymentID != "" {
			if err := uc.paymentRepo.BackfillGatewayPaymentID(txCtx, payment.ID, p.GatewayPaymentID); err != nil {
				uc.logger.Error("ProcessWebhook: failed to backfill payment id=%d: %v", payment.ID, err)
				return fmt.Errorf("%w: failed to backfill gateway payment id: %v", ErrInternal, err)
			}
		}

		if flipped && payment.BookingID != nil {
			booking, err = uc.bookingRepo.GetByID(txCtx, *payment.BookingID)
			if err != nil {
				uc.logger.Error("ProcessWebhook: failed to get booking id=%d: %v", *payment.BookingID, err)
				return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
			}
			if booking.IsActive() && !booking.IsConfirmed() {
				if err := uc.bookingRepo.UpdateStatus(txCtx, booking.ID, domain.StatusConfirmed); err != nil {
					uc.logger.Error("ProcessWebhook: failed to confirm booking id=%d: %v", booking.ID, err)
					return fmt.Errorf("%w: failed to confirm booking: %v", ErrInternal, err)
				}
				booking.Status = domain.StatusConfirmed
			}
		}

		return nil
	})

	if err != nil || payment == nil {
		return err
	}

	if flipped {
		uc.publisher.Publish(ctx, events.KeyPaymentCaptured, events.PaymentCaptured{
			PaymentID:        payment.ID,
			BookingID:        payment.BookingID,
			GatewayPaymentID: p.GatewayPaymentID,
			AmountPaise:      payment.AmountPaise,
		})
		if booking != nil && booking.IsConfirmed() {
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

	uc.logger.Info("ProcessWebhook: payment.captured applied, payment id=%d, flipped=%t", payment.ID, flipped)
	return nil
}

// applyPaymentFailed обрабатывает payment.failed
// Переводит платежи в failed без guard'а: шлюз авторитетен
// в отношении финального отказа
func (uc *UseCase) applyPaymentFailed(ctx context.Context, payload json.RawMessage) error {
	var p PaymentPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return fmt.Errorf("%w: payment.failed: %v", ErrInvalidPayload, err)
	}

	var orderID, paymentID *string
	if p.GatewayOrderID != "" {
		orderID = ptr.Ptr(p.GatewayOrderID)
	}
	if p.GatewayPaymentID != "" {
		paymentID = ptr.Ptr(p.GatewayPaymentID)
	}
	if orderID == nil && paymentID == nil {
		return fmt.Errorf("%w: payment.failed without identifiers", ErrInvalidPayload)
	}

	affected, err := uc.paymentRepo.MarkFailedByGateway(ctx, orderID, paymentID)
	if err != nil {
		uc.logger.Error("ProcessWebhook: failed to mark payments failed: %v", err)
		return fmt.Errorf("%w: failed to mark payments failed: %v", ErrInternal, err)
	}

	uc.logger.Info("ProcessWebhook: payment.failed applied, %d payments affected", affected)
	return nil
}

// applyRefundProcessed обрабатывает refund.processed
// Upsert по gateway_refund_id делает повторную доставку безвредной;
// полный возврат дополнительно переводит платеж в refunded
func (uc *UseCase) applyRefundProcessed(ctx context.Context, payload json.RawMessage) error {
	var p RefundPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return fmt.Errorf("%w: refund.processed: %v", ErrInvalidPayload, err)
	}

	var refund *domain.Refund

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		payment, err := uc.paymentRepo.GetByGatewayPaymentID(txCtx, p.GatewayPaymentID)
		if err != nil {
			if errors.Is(err, paymentRepo.ErrPaymentNotFound) {
				uc.logger.Warn("ProcessWebhook: payment=%s for refund not found", p.GatewayPaymentID)
				return nil
			}
			uc.logger.Error("ProcessWebhook: failed to find payment for refund: %v", err)
			return fmt.Errorf("%w: failed to find payment: %v", ErrInternal, err)
		}

		// При отсутствии refund_id ключом становится детерминированный
		// суррогат, чтобы upsert сохранял идемпотентность
		gatewayRefundID := p.GatewayRefundID
		if gatewayRefundID == "" {
			gatewayRefundID = fmt.Sprintf("manual:%s", p.GatewayPaymentID)
		}

		refund, err = uc.refundRepo.UpsertByGatewayRefundID(txCtx, &domain.Refund{
			PaymentID:       payment.ID,
			AmountPaise:     p.AmountPaise,
			Status:          domain.RefundStatusProcessed,
			GatewayRefundID: ptr.Ptr(gatewayRefundID),
		})
		if err != nil {
			uc.logger.Error("ProcessWebhook: failed to upsert refund: %v", err)
			return fmt.Errorf("%w: failed to upsert refund: %v", ErrInternal, err)
		}

		// Частичный возврат не меняет статус платежа
		if p.AmountPaise == payment.AmountPaise && payment.Status != domain.PaymentStatusRefunded {
			if err := uc.paymentRepo.MarkRefunded(txCtx, payment.ID); err != nil {
				uc.logger.Error("ProcessWebhook: failed to mark payment id=%d refunded: %v", payment.ID, err)
				return fmt.Errorf("%w: failed to mark payment refunded: %v", ErrInternal, err)
			}
		}

		return nil
	})

	if err != nil || refund == nil {
		return err
	}

	uc.publisher.Publish(ctx, events.KeyRefundIssued, events.RefundIssued{
		RefundID:    refund.ID,
		PaymentID:   refund.PaymentID,
		AmountPaise: refund.AmountPaise,
		Status:      string(refund.Status),
	})

	uc.logger.Info("ProcessWebhook: refund.processed applied, refund id=%d", refund.ID)
	return nil
}

// applySubscriptionTransition обрабатывает события subscription.*
// Переход применяется, только если подписка еще не в целевом статусе
// Активация дополнительно выдает сессионные кредиты и VIP флаг,
// но не повторно при replay события
func (uc *UseCase) applySubscriptionTransition(ctx context.Context, payload json.RawMessage, target domain.MembershipStatus) error {
	var p SubscriptionPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return fmt.Errorf("%w: subscription event: %v", ErrInvalidPayload, err)
	}
	if p.SubscriptionID == "" {
		return fmt.Errorf("%w: subscription event without subscription_id", ErrInvalidPayload)
	}

	return uc.txManager.Do(ctx, func(txCtx context.Context) error {
		membership, err := uc.membershipRepo.GetBySubscriptionID(txCtx, p.SubscriptionID)
		if err != nil {
			uc.logger.Warn("ProcessWebhook: membership for subscription=%s not found: %v", p.SubscriptionID, err)
			return nil
		}

		if membership.Status == target {
			uc.logger.Info("ProcessWebhook: membership id=%d already %s", membership.ID, target)
			return nil
		}

		if err := uc.membershipRepo.UpdateStatus(txCtx, membership.ID, target); err != nil {
			uc.logger.Error("ProcessWebhook: failed to update membership id=%d: %v", membership.ID, err)
			return fmt.Errorf("%w: failed to update membership: %v", ErrInternal, err)
		}

		if target == domain.MembershipStatusActive {
			if err := uc.grantActivationCredits(txCtx, membership); err != nil {
				return err
			}
		}

		uc.logger.Info("ProcessWebhook: membership id=%d moved to %s", membership.ID, target)
		return nil
	})
}

// grantActivationCredits выдает кредиты и VIP флаг при активации подписки
// Существующая запись кредитов по подписке означает replay события
func (uc *UseCase) grantActivationCredits(ctx context.Context, membership *domain.VIPMembership) error {
	granted, err := uc.membershipRepo.HasSessionCredit(ctx, membership.ID)
	if err != nil {
		uc.logger.Error("ProcessWebhook: failed to check credits for membership id=%d: %v", membership.ID, err)
		return fmt.Errorf("%w: failed to check credits: %v", ErrInternal, err)
	}
	if granted {
		uc.logger.Info("ProcessWebhook: credits for membership id=%d already granted", membership.ID)
		return nil
	}

	if _, err := uc.membershipRepo.CreateSessionCredit(ctx, &domain.SessionCredit{
		MembershipID: membership.ID,
		UserID:       membership.UserID,
		Total:        domain.DefaultCreditsPerActivation,
	}); err != nil {
		uc.logger.Error("ProcessWebhook: failed to grant credits for membership id=%d: %v", membership.ID, err)
		return fmt.Errorf("%w: failed to grant credits: %v", ErrInternal, err)
	}

	if err := uc.membershipRepo.SetUserVIP(ctx, membership.UserID, true); err != nil {
		uc.logger.Error("ProcessWebhook: failed to set vip for user id=%d: %v", membership.UserID, err)
		return fmt.Errorf("%w: failed to set vip flag: %v", ErrInternal, err)
	}

	return nil
}

// findPayment ищет платеж сначала по ID платежа, затем по ID заказа
func (uc *UseCase) findPayment(ctx context.Context, gatewayPaymentID, gatewayOrderID string) (*domain.Payment, error) {
	if gatewayPaymentID != "" {
		payment, err := uc.paymentRepo.GetByGatewayPaymentID(ctx, gatewayPaymentID)
		if err == nil {
			return payment, nil
		}
		if !errors.Is(err, paymentRepo.ErrPaymentNotFound) {
			return nil, err
		}
	}
	if gatewayOrderID == "" {
		return nil, paymentRepo.ErrPaymentNotFound
	}
	return uc.paymentRepo.GetByGatewayOrderID(ctx, gatewayOrderID)
}
