package confirm_with_credits

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-WellnessBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-WellnessBooking/internal/infra/storage/booking"
	creditRepo "github.com/m04kA/SMC-WellnessBooking/internal/infra/storage/membership"
)

type fakeBookingRepo struct {
	booking *domain.Booking
	getErr  error
	updates []domain.BookingStatus
}

func (f *fakeBookingRepo) GetByID(_ context.Context, _ int64) (*domain.Booking, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	b := *f.booking
	return &b, nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, _ int64, status domain.BookingStatus) error {
	f.updates = append(f.updates, status)
	f.booking.Status = status
	return nil
}

type fakeCreditRepo struct {
	credit   *domain.SessionCredit
	consumed int
}

func (f *fakeCreditRepo) GetAvailableCreditByUser(_ context.Context, _ int64) (*domain.SessionCredit, error) {
	if f.credit == nil || f.credit.Remaining() == 0 {
		return nil, creditRepo.ErrCreditNotFound
	}
	c := *f.credit
	return &c, nil
}

func (f *fakeCreditRepo) ConsumeCredit(_ context.Context, _ int64) error {
	if f.credit.Remaining() == 0 {
		return creditRepo.ErrNoCreditsLeft
	}
	f.credit.Used++
	f.consumed++
	return nil
}

type fakePublisher struct {
	events []string
}

func (f *fakePublisher) Publish(_ context.Context, key string, _ interface{}) {
	f.events = append(f.events, key)
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func pendingBooking() *domain.Booking {
	return &domain.Booking{
		ID:          10,
		UserID:      5,
		HealerID:    1,
		ServiceID:   2,
		ScheduledAt: time.Date(2025, 6, 12, 10, 0, 0, 0, time.UTC),
		Status:      domain.StatusPending,
	}
}

type creditFixture struct {
	bookings  *fakeBookingRepo
	credits   *fakeCreditRepo
	publisher *fakePublisher
	uc        *UseCase
}

func newFixture(booking *domain.Booking, credit *domain.SessionCredit) *creditFixture {
	f := &creditFixture{
		bookings:  &fakeBookingRepo{booking: booking},
		credits:   &fakeCreditRepo{credit: credit},
		publisher: &fakePublisher{},
	}
	f.uc = NewUseCase(f.bookings, f.credits, f.publisher, fakeTxManager{}, noopLogger{})
	return f
}

func TestExecute_Success(t *testing.T) {
	f := newFixture(pendingBooking(), &domain.SessionCredit{ID: 7, UserID: 5, Total: 4, Used: 1})

	resp, err := f.uc.Execute(context.Background(), &Request{UserID: 5, BookingID: 10})

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.False(t, resp.AlreadyConfirmed)
	assert.Equal(t, 2, resp.CreditsRemaining)
	assert.Equal(t, 1, f.credits.consumed)
	assert.Equal(t, []domain.BookingStatus{domain.StatusConfirmed}, f.bookings.updates)
	assert.Equal(t, []string{"booking.confirmed"}, f.publisher.events)
}

func TestExecute_AlreadyConfirmedDoesNotConsumeCredit(t *testing.T) {
	booking := pendingBooking()
	booking.Status = domain.StatusConfirmed

	f := newFixture(booking, &domain.SessionCredit{ID: 7, UserID: 5, Total: 4, Used: 1})

	resp, err := f.uc.Execute(context.Background(), &Request{UserID: 5, BookingID: 10})

	require.NoError(t, err)
	assert.True(t, resp.AlreadyConfirmed)
	assert.Equal(t, 0, f.credits.consumed)
	assert.Empty(t, f.bookings.updates)
	assert.Empty(t, f.publisher.events)
}

func TestExecute_NoCredits(t *testing.T) {
	f := newFixture(pendingBooking(), &domain.SessionCredit{ID: 7, UserID: 5, Total: 2, Used: 2})

	_, err := f.uc.Execute(context.Background(), &Request{UserID: 5, BookingID: 10})

	assert.ErrorIs(t, err, ErrNoCredits)
	assert.Empty(t, f.bookings.updates)
}

func TestExecute_CancelledBookingNotConfirmable(t *testing.T) {
	booking := pendingBooking()
	booking.Status = domain.StatusCancelled

	f := newFixture(booking, &domain.SessionCredit{ID: 7, UserID: 5, Total: 4, Used: 0})

	_, err := f.uc.Execute(context.Background(), &Request{UserID: 5, BookingID: 10})

	assert.ErrorIs(t, err, ErrNotConfirmable)
	assert.Equal(t, 0, f.credits.consumed)
}

func TestExecute_ForeignBookingHiddenAsNotFound(t *testing.T) {
	f := newFixture(pendingBooking(), &domain.SessionCredit{ID: 7, UserID: 6, Total: 4, Used: 0})

	_, err := f.uc.Execute(context.Background(), &Request{UserID: 6, BookingID: 10})

	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExecute_MissingBooking(t *testing.T) {
	f := newFixture(pendingBooking(), &domain.SessionCredit{ID: 7, UserID: 5, Total: 4, Used: 0})
	f.bookings.getErr = bookingRepo.ErrBookingNotFound

	_, err := f.uc.Execute(context.Background(), &Request{UserID: 5, BookingID: 10})

	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExecute_InvalidInput(t *testing.T) {
	f := newFixture(pendingBooking(), &domain.SessionCredit{ID: 7, UserID: 5, Total: 4, Used: 0})

	_, err := f.uc.Execute(context.Background(), &Request{BookingID: 10})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.uc.Execute(context.Background(), &Request{UserID: 5})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
