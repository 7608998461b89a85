package create_booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-WellnessBooking/internal/domain"
	"github.com/m04kA/SMC-WellnessBooking/internal/integrations/paygateway"
	"github.com/m04kA/SMC-WellnessBooking/internal/usecase/validate_slot"
)

type fakeBookingRepo struct {
	created *domain.Booking
}

func (f *fakeBookingRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	booking.ID = 10
	booking.CreatedAt = testNow
	f.created = booking
	return booking, nil
}

type fakePaymentRepo struct {
	created *domain.Payment
}

func (f *fakePaymentRepo) Create(_ context.Context, payment *domain.Payment) (*domain.Payment, error) {
	payment.ID = 3
	f.created = payment
	return payment, nil
}

type fakeValidator struct {
	result *validate_slot.CheckResult
}

func (f *fakeValidator) Check(_ context.Context, _, _ int64, _, _ time.Time, _ *int64) (*validate_slot.CheckResult, error) {
	return f.result, nil
}

type fakeGateway struct {
	order *paygateway.Order
	err   error
	calls int
}

func (f *fakeGateway) CreateOrder(_ context.Context, req *paygateway.CreateOrderRequest) (*paygateway.Order, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	order := *f.order
	order.AmountPaise = req.AmountPaise
	order.Currency = req.Currency
	return &order, nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

var testNow = time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)

func validCheckResult() *validate_slot.CheckResult {
	return &validate_slot.CheckResult{
		Valid:  true,
		Healer: &domain.Healer{ID: 1, Name: "Анна", IsActive: true},
		Service: &domain.Service{
			ID:              2,
			Name:            "Глубокий массаж",
			DurationMinutes: 90,
			PricePaise:      250000,
			IsActive:        true,
		},
	}
}

type createFixture struct {
	bookings *fakeBookingRepo
	payments *fakePaymentRepo
	gateway  *fakeGateway
	uc       *UseCase
}

func newFixture(check *validate_slot.CheckResult, gateway *fakeGateway) *createFixture {
	f := &createFixture{
		bookings: &fakeBookingRepo{},
		payments: &fakePaymentRepo{},
		gateway:  gateway,
	}
	f.uc = NewUseCase(f.bookings, f.payments, &fakeValidator{result: check}, f.gateway, fakeTxManager{}, noopLogger{})
	f.uc.timeProvider = &fixedTimeProvider{now: testNow}
	return f
}

func validRequest() *Request {
	return &Request{
		UserID:      5,
		HealerID:    1,
		ServiceID:   2,
		ScheduledAt: time.Date(2025, 6, 11, 10, 30, 0, 0, time.UTC),
	}
}

func TestExecute_Success(t *testing.T) {
	f := newFixture(validCheckResult(), &fakeGateway{order: &paygateway.Order{ID: "order_1", Status: "created"}})

	resp, err := f.uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, int64(10), resp.ID)
	assert.Equal(t, string(domain.StatusPending), resp.Status)

	// Длительность и цена снимаются с услуги на момент создания
	assert.Equal(t, 90, resp.DurationMinutes)
	assert.Equal(t, int64(250000), resp.PricePaise)
	assert.Equal(t, "Глубокий массаж", resp.ServiceName)
	assert.Equal(t, "Анна", resp.HealerName)

	require.NotNil(t, resp.PaymentOrder)
	assert.Equal(t, "order_1", resp.PaymentOrder.OrderID)
	assert.Equal(t, int64(250000), resp.PaymentOrder.AmountPaise)
	assert.Equal(t, "INR", resp.PaymentOrder.Currency)

	require.NotNil(t, f.payments.created)
	assert.Equal(t, "order_1", f.payments.created.GatewayOrderID)
	assert.Equal(t, domain.PaymentStatusPending, f.payments.created.Status)
	require.NotNil(t, f.payments.created.BookingID)
	assert.Equal(t, int64(10), *f.payments.created.BookingID)
}

func TestExecute_GatewayFailureKeepsBookingPending(t *testing.T) {
	f := newFixture(validCheckResult(), &fakeGateway{err: errors.New("gateway unavailable")})

	resp, err := f.uc.Execute(context.Background(), validRequest())

	// Сбой шлюза не откатывает бронирование
	require.NoError(t, err)
	assert.Equal(t, int64(10), resp.ID)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Nil(t, resp.PaymentOrder)
	assert.Nil(t, f.payments.created)
}

func TestExecute_RejectedSlotMapsToError(t *testing.T) {
	tests := []struct {
		reason  string
		wantErr error
	}{
		{validate_slot.MsgPastTime, ErrPastTime},
		{validate_slot.MsgMisaligned, ErrMisaligned},
		{validate_slot.MsgHealerNotFound, ErrHealerNotFound},
		{validate_slot.MsgServiceNotFound, ErrServiceNotFound},
		{validate_slot.MsgOutsideWindow, ErrHealerUnavailable},
		{validate_slot.MsgSlotTaken, ErrSlotNotAvailable},
	}

	for _, tt := range tests {
		t.Run(tt.reason, func(t *testing.T) {
			f := newFixture(&validate_slot.CheckResult{Reason: tt.reason}, &fakeGateway{order: &paygateway.Order{ID: "order_1"}})

			_, err := f.uc.Execute(context.Background(), validRequest())

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, f.bookings.created)
			assert.Equal(t, 0, f.gateway.calls)
		})
	}
}

func TestExecute_InvalidInput(t *testing.T) {
	f := newFixture(validCheckResult(), &fakeGateway{order: &paygateway.Order{ID: "order_1"}})

	tests := []struct {
		name string
		req  *Request
	}{
		{"zero user", &Request{HealerID: 1, ServiceID: 2, ScheduledAt: testNow.Add(24 * time.Hour)}},
		{"zero healer", &Request{UserID: 5, ServiceID: 2, ScheduledAt: testNow.Add(24 * time.Hour)}},
		{"zero service", &Request{UserID: 5, HealerID: 1, ScheduledAt: testNow.Add(24 * time.Hour)}},
		{"zero time", &Request{UserID: 5, HealerID: 1, ServiceID: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
