package verify_payment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-WellnessBooking/internal/domain"
	paymentRepo "github.com/m04kA/SMC-WellnessBooking/internal/infra/storage/payment"
	"github.com/m04kA/SMC-WellnessBooking/internal/integrations/paygateway"
	"github.com/m04kA/SMC-WellnessBooking/pkg/ptr"
)

const testSecret = "test-key-secret"

type fakePaymentRepo struct {
	payment *domain.Payment
	flips   int
}

func (f *fakePaymentRepo) GetByGatewayOrderID(_ context.Context, _ string) (*domain.Payment, error) {
	if f.payment == nil {
		return nil, paymentRepo.ErrPaymentNotFound
	}
	return f.payment, nil
}

func (f *fakePaymentRepo) MarkSuccess(_ context.Context, _ int64, gatewayPaymentID *string, _ *string) (bool, error) {
	if f.payment.Status == domain.PaymentStatusSuccess {
		return false, nil
	}
	f.payment.Status = domain.PaymentStatusSuccess
	f.payment.GatewayPaymentID = gatewayPaymentID
	f.flips++
	return true, nil
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

type verifyFixture struct {
	payments  *fakePaymentRepo
	bookings  *fakeBookingRepo
	publisher *fakePublisher
	uc        *UseCase
}

func newFixture() *verifyFixture {
	f := &verifyFixture{
		payments: &fakePaymentRepo{
			payment: &domain.Payment{
				ID:             3,
				BookingID:      ptr.Ptr(int64(10)),
				AmountPaise:    100000,
				Status:         domain.PaymentStatusPending,
				GatewayOrderID: "order_1",
			},
		},
		bookings: &fakeBookingRepo{
			booking: &domain.Booking{ID: 10, UserID: 5, Status: domain.StatusPending},
		},
		publisher: &fakePublisher{},
	}
	f.uc = NewUseCase(f.payments, f.bookings, f.publisher, fakeTxManager{}, testSecret, noopLogger{})
	return f
}

func signedRequest(userID int64) *Request {
	return &Request{
		UserID:           userID,
		GatewayOrderID:   "order_1",
		GatewayPaymentID: "pay_1",
		Signature:        paygateway.CheckoutSignature("order_1", "pay_1", testSecret),
	}
}

func TestExecute_Success(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), signedRequest(5))

	require.NoError(t, err)
	assert.True(t, resp.Verified)
	assert.False(t, resp.AlreadyVerified)
	assert.Equal(t, string(domain.StatusConfirmed), resp.BookingStatus)
	assert.Equal(t, []domain.BookingStatus{domain.StatusConfirmed}, f.bookings.updates)
	assert.Contains(t, f.publisher.events, "payment.captured")
	assert.Contains(t, f.publisher.events, "booking.confirmed")
}

func TestExecute_InvalidSignatureMutatesNothing(t *testing.T) {
	f := newFixture()

	req := signedRequest(5)
	req.Signature = "ffffffffffffffff"

	_, err := f.uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrInvalidSignature)
	assert.Equal(t, domain.PaymentStatusPending, f.payments.payment.Status)
	assert.Empty(t, f.bookings.updates)
	assert.Empty(t, f.publisher.events)
}

func TestExecute_ReplayIsIdempotent(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), signedRequest(5))
	require.NoError(t, err)

	resp, err := f.uc.Execute(context.Background(), signedRequest(5))

	require.NoError(t, err)
	assert.True(t, resp.Verified)
	assert.True(t, resp.AlreadyVerified)
	assert.Equal(t, 1, f.payments.flips)

	// Статус бронирования обновлялся только при первом вызове
	assert.Equal(t, []domain.BookingStatus{domain.StatusConfirmed}, f.bookings.updates)

	// События публиковались только при первом вызове
	assert.Len(t, f.publisher.events, 2)
}

func TestExecute_PaymentNotFound(t *testing.T) {
	f := newFixture()
	f.payments.payment = nil

	_, err := f.uc.Execute(context.Background(), signedRequest(5))

	assert.ErrorIs(t, err, ErrPaymentNotFound)
}

func TestExecute_ForeignBookingHiddenAsNotFound(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), signedRequest(6))

	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExecute_InvalidInput(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), &Request{UserID: 5, GatewayPaymentID: "pay_1", Signature: "sig"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.uc.Execute(context.Background(), &Request{UserID: 5, GatewayOrderID: "order_1", Signature: "sig"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.uc.Execute(context.Background(), &Request{UserID: 5, GatewayOrderID: "order_1", GatewayPaymentID: "pay_1"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
