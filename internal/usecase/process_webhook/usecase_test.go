package process_webhook

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-WellnessBooking/internal/domain"
	paymentRepo "github.com/m04kA/SMC-WellnessBooking/internal/infra/storage/payment"
	"github.com/m04kA/SMC-WellnessBooking/pkg/ptr"
)

type fakePaymentRepo struct {
	payment     *domain.Payment
	markSuccess bool
	backfilled  []string
	failedCalls int
	refundedIDs []int64
}

func (f *fakePaymentRepo) GetByGatewayOrderID(_ context.Context, _ string) (*domain.Payment, error) {
	if f.payment == nil {
		return nil, paymentRepo.ErrPaymentNotFound
	}
	return f.payment, nil
}

func (f *fakePaymentRepo) GetByGatewayPaymentID(_ context.Context, _ string) (*domain.Payment, error) {
	if f.payment == nil || f.payment.GatewayPaymentID == nil {
		return nil, paymentRepo.ErrPaymentNotFound
	}
	return f.payment, nil
}

func (f *fakePaymentRepo) MarkSuccess(_ context.Context, _ int64, _ *string, _ *string) (bool, error) {
	if f.payment.Status == domain.PaymentStatusSuccess {
		return false, nil
	}
	f.markSuccess = true
	return true, nil
}

func (f *fakePaymentRepo) BackfillGatewayPaymentID(_ context.Context, _ int64, gatewayPaymentID string) error {
	f.backfilled = append(f.backfilled, gatewayPaymentID)
	return nil
}

func (f *fakePaymentRepo) MarkFailedByGateway(_ context.Context, _, _ *string) (int64, error) {
	f.failedCalls++
	return 1, nil
}

func (f *fakePaymentRepo) MarkRefunded(_ context.Context, id int64) error {
	f.refundedIDs = append(f.refundedIDs, id)
	return nil
}

type fakeRefundRepo struct {
	upserts map[string]*domain.Refund
}

func (f *fakeRefundRepo) UpsertByGatewayRefundID(_ context.Context, refund *domain.Refund) (*domain.Refund, error) {
	if f.upserts == nil {
		f.upserts = make(map[string]*domain.Refund)
	}
	key := *refund.GatewayRefundID
	if existing, ok := f.upserts[key]; ok {
		existing.Status = refund.Status
		existing.AmountPaise = refund.AmountPaise
		return existing, nil
	}
	refund.ID = int64(len(f.upserts) + 1)
	f.upserts[key] = refund
	return refund, nil
}

type fakeBookingRepo struct {
	booking *domain.Booking
	updates []domain.BookingStatus
}

func (f *fakeBookingRepo) GetByID(_ context.Context, _ int64) (*domain.Booking, error) {
	b := *f.booking
	return &b, nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, _ int64, status domain.BookingStatus) error {
	f.updates = append(f.updates, status)
	f.booking.Status = status
	return nil
}

type fakeMembershipRepo struct {
	membership *domain.VIPMembership
	hasCredit  bool
	credits    []*domain.SessionCredit
	statuses   []domain.MembershipStatus
	vipUsers   []int64
}

func (f *fakeMembershipRepo) GetBySubscriptionID(_ context.Context, _ string) (*domain.VIPMembership, error) {
	if f.membership == nil {
		return nil, assert.AnError
	}
	m := *f.membership
	return &m, nil
}

func (f *fakeMembershipRepo) UpdateStatus(_ context.Context, _ int64, status domain.MembershipStatus) error {
	f.statuses = append(f.statuses, status)
	f.membership.Status = status
	return nil
}

func (f *fakeMembershipRepo) HasSessionCredit(_ context.Context, _ int64) (bool, error) {
	return f.hasCredit, nil
}

func (f *fakeMembershipRepo) CreateSessionCredit(_ context.Context, credit *domain.SessionCredit) (*domain.SessionCredit, error) {
	f.credits = append(f.credits, credit)
	f.hasCredit = true
	return credit, nil
}

func (f *fakeMembershipRepo) SetUserVIP(_ context.Context, userID int64, _ bool) error {
	f.vipUsers = append(f.vipUsers, userID)
	return nil
}

type fakePublisher struct {
	events []string
}

func (f *fakePublisher) Publish(_ context.Context, key string, _ interface{}) {
	f.events = append(f.events, key)
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

type webhookFixture struct {
	payments    *fakePaymentRepo
	refunds     *fakeRefundRepo
	bookings    *fakeBookingRepo
	memberships *fakeMembershipRepo
	publisher   *fakePublisher
	uc          *UseCase
}

func newFixture() *webhookFixture {
	f := &webhookFixture{
		payments: &fakePaymentRepo{
			payment: &domain.Payment{
				ID:             3,
				BookingID:      ptr.Ptr(int64(10)),
				AmountPaise:    100000,
				Status:         domain.PaymentStatusPending,
				GatewayOrderID: "order_1",
			},
		},
		refunds: &fakeRefundRepo{},
		bookings: &fakeBookingRepo{
			booking: &domain.Booking{ID: 10, UserID: 5, Status: domain.StatusPending},
		},
		memberships: &fakeMembershipRepo{
			membership: &domain.VIPMembership{ID: 7, UserID: 5, SubscriptionID: "sub_1", Status: domain.MembershipStatusPaused},
		},
		publisher: &fakePublisher{},
	}
	f.uc = NewUseCase(f.payments, f.refunds, f.bookings, f.memberships, f.publisher, fakeTxManager{}, noopLogger{})
	return f
}

func rawPayload(t *testing.T, v interface{}) json.RawMessage {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return data
}

func TestExecute_UnknownEventAcked(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), &Request{
		EventType: "invoice.generated",
		Payload:   json.RawMessage(`{}`),
	})

	require.NoError(t, err)
	assert.True(t, resp.Ok)
	assert.Empty(t, f.publisher.events)
}

func TestExecute_PaymentCapturedConfirmsBooking(t *testing.T) {
	f := newFixture()

	payload := rawPayload(t, map[string]interface{}{
		"order_id":   "order_1",
		"payment_id": "pay_1",
		"amount":     100000,
	})

	resp, err := f.uc.Execute(context.Background(), &Request{EventType: EventPaymentCaptured, Payload: payload})

	require.NoError(t, err)
	assert.True(t, resp.Ok)
	assert.True(t, f.payments.markSuccess)
	assert.Equal(t, []domain.BookingStatus{domain.StatusConfirmed}, f.bookings.updates)
	assert.Contains(t, f.publisher.events, "payment.captured")
	assert.Contains(t, f.publisher.events, "booking.confirmed")
}

func TestExecute_PaymentCapturedReplayIsIdempotent(t *testing.T) {
	f := newFixture()
	f.payments.payment.Status = domain.PaymentStatusSuccess
	f.payments.payment.GatewayPaymentID = ptr.Ptr("pay_1")

	payload := rawPayload(t, map[string]interface{}{
		"order_id":   "order_1",
		"payment_id": "pay_1",
	})

	resp, err := f.uc.Execute(context.Background(), &Request{EventType: EventPaymentCaptured, Payload: payload})

	require.NoError(t, err)
	assert.True(t, resp.Ok)
	assert.Empty(t, f.bookings.updates)
	assert.Empty(t, f.publisher.events)
}

func TestExecute_PaymentCapturedBackfillsGatewayID(t *testing.T) {
	f := newFixture()
	f.payments.payment.Status = domain.PaymentStatusSuccess
	f.payments.payment.GatewayPaymentID = nil

	payload := rawPayload(t, map[string]interface{}{
		"order_id":   "order_1",
		"payment_id": "pay_late",
	})

	_, err := f.uc.Execute(context.Background(), &Request{EventType: EventPaymentCaptured, Payload: payload})

	require.NoError(t, err)
	assert.Equal(t, []string{"pay_late"}, f.payments.backfilled)
}

func TestExecute_PaymentCapturedUnknownPaymentAcked(t *testing.T) {
	f := newFixture()
	f.payments.payment = nil

	payload := rawPayload(t, map[string]interface{}{
		"order_id":   "order_unknown",
		"payment_id": "pay_unknown",
	})

	resp, err := f.uc.Execute(context.Background(), &Request{EventType: EventPaymentCaptured, Payload: payload})

	require.NoError(t, err)
	assert.True(t, resp.Ok)
}

func TestExecute_PaymentFailedRequiresIdentifiers(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), &Request{
		EventType: EventPaymentFailed,
		Payload:   json.RawMessage(`{}`),
	})

	assert.ErrorIs(t, err, ErrInvalidPayload)
	assert.Equal(t, 0, f.payments.failedCalls)
}

func TestExecute_PaymentFailedMarksPayments(t *testing.T) {
	f := newFixture()

	payload := rawPayload(t, map[string]interface{}{"order_id": "order_1"})

	resp, err := f.uc.Execute(context.Background(), &Request{EventType: EventPaymentFailed, Payload: payload})

	require.NoError(t, err)
	assert.True(t, resp.Ok)
	assert.Equal(t, 1, f.payments.failedCalls)
}

func TestExecute_RefundProcessedUpsertNoDuplicates(t *testing.T) {
	f := newFixture()
	f.payments.payment.GatewayPaymentID = ptr.Ptr("pay_1")

	payload := rawPayload(t, map[string]interface{}{
		"refund_id":  "rfnd_1",
		"payment_id": "pay_1",
		"amount":     50000,
	})

	_, err := f.uc.Execute(context.Background(), &Request{EventType: EventRefundProcessed, Payload: payload})
	require.NoError(t, err)

	_, err = f.uc.Execute(context.Background(), &Request{EventType: EventRefundProcessed, Payload: payload})
	require.NoError(t, err)

	assert.Len(t, f.refunds.upserts, 1)
	assert.Equal(t, domain.RefundStatusProcessed, f.refunds.upserts["rfnd_1"].Status)

	// Частичный возврат не переводит платеж в refunded
	assert.Empty(t, f.payments.refundedIDs)
}

func TestExecute_FullRefundMarksPaymentRefunded(t *testing.T) {
	f := newFixture()
	f.payments.payment.GatewayPaymentID = ptr.Ptr("pay_1")

	payload := rawPayload(t, map[string]interface{}{
		"refund_id":  "rfnd_1",
		"payment_id": "pay_1",
		"amount":     100000,
	})

	_, err := f.uc.Execute(context.Background(), &Request{EventType: EventRefundProcessed, Payload: payload})

	require.NoError(t, err)
	assert.Equal(t, []int64{3}, f.payments.refundedIDs)
	assert.Contains(t, f.publisher.events, "refund.issued")
}

func TestExecute_RefundWithoutIDUsesSurrogateKey(t *testing.T) {
	f := newFixture()
	f.payments.payment.GatewayPaymentID = ptr.Ptr("pay_1")

	payload := rawPayload(t, map[string]interface{}{
		"payment_id": "pay_1",
		"amount":     50000,
	})

	_, err := f.uc.Execute(context.Background(), &Request{EventType: EventRefundProcessed, Payload: payload})
	require.NoError(t, err)
	_, err = f.uc.Execute(context.Background(), &Request{EventType: EventRefundProcessed, Payload: payload})
	require.NoError(t, err)

	assert.Len(t, f.refunds.upserts, 1)
	assert.Contains(t, f.refunds.upserts, "manual:pay_1")
}

func TestExecute_SubscriptionActivationGrantsCreditsOnce(t *testing.T) {
	f := newFixture()

	payload := rawPayload(t, map[string]interface{}{"subscription_id": "sub_1"})

	_, err := f.uc.Execute(context.Background(), &Request{EventType: EventSubscriptionActivated, Payload: payload})
	require.NoError(t, err)

	require.Len(t, f.memberships.credits, 1)
	assert.Equal(t, domain.DefaultCreditsPerActivation, f.memberships.credits[0].Total)
	assert.Equal(t, []int64{5}, f.memberships.vipUsers)
	assert.Equal(t, domain.MembershipStatusActive, f.memberships.membership.Status)

	// Replay активации не выдает кредиты повторно
	f.memberships.membership.Status = domain.MembershipStatusPaused
	_, err = f.uc.Execute(context.Background(), &Request{EventType: EventSubscriptionActivated, Payload: payload})
	require.NoError(t, err)

	assert.Len(t, f.memberships.credits, 1)
}

func TestExecute_SubscriptionTransitionSkippedWhenAlreadyTarget(t *testing.T) {
	f := newFixture()
	f.memberships.membership.Status = domain.MembershipStatusActive
	f.memberships.hasCredit = true

	payload := rawPayload(t, map[string]interface{}{"subscription_id": "sub_1"})

	_, err := f.uc.Execute(context.Background(), &Request{EventType: EventSubscriptionActivated, Payload: payload})

	require.NoError(t, err)
	assert.Empty(t, f.memberships.statuses)
	assert.Empty(t, f.memberships.credits)
}

func TestExecute_SubscriptionCancelled(t *testing.T) {
	f := newFixture()
	f.memberships.membership.Status = domain.MembershipStatusActive

	payload := rawPayload(t, map[string]interface{}{"subscription_id": "sub_1"})

	_, err := f.uc.Execute(context.Background(), &Request{EventType: EventSubscriptionCancelled, Payload: payload})

	require.NoError(t, err)
	assert.Equal(t, domain.MembershipStatusCancelled, f.memberships.membership.Status)
	assert.Empty(t, f.memberships.credits)
}

func TestExecute_SubscriptionWithoutIDRejected(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), &Request{
		EventType: EventSubscriptionActivated,
		Payload:   json.RawMessage(`{}`),
	})

	assert.ErrorIs(t, err, ErrInvalidPayload)
}
