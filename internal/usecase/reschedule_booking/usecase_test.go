package reschedule_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-WellnessBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-WellnessBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-WellnessBooking/internal/usecase/validate_slot"
)

type fakeBookingRepo struct {
	booking     *domain.Booking
	getErr      error
	rescheduled *time.Time
}

func (f *fakeBookingRepo) GetByID(_ context.Context, _ int64) (*domain.Booking, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	b := *f.booking
	return &b, nil
}

func (f *fakeBookingRepo) Reschedule(_ context.Context, id int64, scheduledAt time.Time) (*domain.Booking, error) {
	f.rescheduled = &scheduledAt
	b := *f.booking
	b.ScheduledAt = scheduledAt
	b.Status = domain.StatusRescheduled
	return &b, nil
}

type fakeValidator struct {
	result     *validate_slot.CheckResult
	excludedID *int64
	checkedAt  time.Time
}

func (f *fakeValidator) Check(_ context.Context, _, _ int64, scheduledAt, _ time.Time, excludeBookingID *int64) (*validate_slot.CheckResult, error) {
	f.excludedID = excludeBookingID
	f.checkedAt = scheduledAt
	return f.result, nil
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

var testNow = time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

func reschedulableBooking() *domain.Booking {
	return &domain.Booking{
		ID:              10,
		UserID:          5,
		HealerID:        1,
		ServiceID:       2,
		ScheduledAt:     testNow.Add(48 * time.Hour),
		DurationMinutes: 60,
		PricePaise:      100000,
		Status:          domain.StatusConfirmed,
	}
}

func newTestUseCase(bookings *fakeBookingRepo, validator *fakeValidator) *UseCase {
	uc := NewUseCase(bookings, validator, fakeTxManager{}, noopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: testNow}
	return uc
}

func TestExecute_Success(t *testing.T) {
	bookings := &fakeBookingRepo{booking: reschedulableBooking()}
	validator := &fakeValidator{result: &validate_slot.CheckResult{Valid: true}}
	uc := newTestUseCase(bookings, validator)

	newTime := testNow.Add(72 * time.Hour)
	resp, err := uc.Execute(context.Background(), &Request{UserID: 5, BookingID: 10, NewScheduledAt: newTime})

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusRescheduled), resp.Status)
	assert.Equal(t, newTime, resp.ScheduledAt)
	require.NotNil(t, bookings.rescheduled)

	// Собственное бронирование исключается из проверки пересечений
	require.NotNil(t, validator.excludedID)
	assert.Equal(t, int64(10), *validator.excludedID)
}

func TestExecute_OldTimeTooClose(t *testing.T) {
	booking := reschedulableBooking()
	booking.ScheduledAt = testNow.Add(10 * time.Hour)

	bookings := &fakeBookingRepo{booking: booking}
	uc := newTestUseCase(bookings, &fakeValidator{result: &validate_slot.CheckResult{Valid: true}})

	_, err := uc.Execute(context.Background(), &Request{UserID: 5, BookingID: 10, NewScheduledAt: testNow.Add(72 * time.Hour)})

	assert.ErrorIs(t, err, ErrTooCloseToStart)
	assert.Nil(t, bookings.rescheduled)
}

func TestExecute_NewTimeTooClose(t *testing.T) {
	bookings := &fakeBookingRepo{booking: reschedulableBooking()}
	uc := newTestUseCase(bookings, &fakeValidator{result: &validate_slot.CheckResult{Valid: true}})

	_, err := uc.Execute(context.Background(), &Request{UserID: 5, BookingID: 10, NewScheduledAt: testNow.Add(10 * time.Hour)})

	assert.ErrorIs(t, err, ErrTooCloseToStart)
	assert.Nil(t, bookings.rescheduled)
}

func TestExecute_ExactlyAtNoticeBoundaryAllowed(t *testing.T) {
	booking := reschedulableBooking()
	booking.ScheduledAt = testNow.Add(24 * time.Hour)

	bookings := &fakeBookingRepo{booking: booking}
	uc := newTestUseCase(bookings, &fakeValidator{result: &validate_slot.CheckResult{Valid: true}})

	_, err := uc.Execute(context.Background(), &Request{UserID: 5, BookingID: 10, NewScheduledAt: testNow.Add(24 * time.Hour)})

	require.NoError(t, err)
	require.NotNil(t, bookings.rescheduled)
}

func TestExecute_CancelledBookingNotReschedulable(t *testing.T) {
	booking := reschedulableBooking()
	booking.Status = domain.StatusCancelled

	uc := newTestUseCase(&fakeBookingRepo{booking: booking}, &fakeValidator{result: &validate_slot.CheckResult{Valid: true}})

	_, err := uc.Execute(context.Background(), &Request{UserID: 5, BookingID: 10, NewScheduledAt: testNow.Add(72 * time.Hour)})

	assert.ErrorIs(t, err, ErrNotReschedulable)
}

func TestExecute_ForeignBookingHiddenAsNotFound(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{booking: reschedulableBooking()}, &fakeValidator{result: &validate_slot.CheckResult{Valid: true}})

	_, err := uc.Execute(context.Background(), &Request{UserID: 6, BookingID: 10, NewScheduledAt: testNow.Add(72 * time.Hour)})

	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExecute_MissingBooking(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{getErr: bookingRepo.ErrBookingNotFound}, &fakeValidator{result: &validate_slot.CheckResult{Valid: true}})

	_, err := uc.Execute(context.Background(), &Request{UserID: 5, BookingID: 10, NewScheduledAt: testNow.Add(72 * time.Hour)})

	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExecute_ValidatorReasonsMapToErrors(t *testing.T) {
	tests := []struct {
		reason  string
		wantErr error
	}{
		{validate_slot.MsgSlotTaken, ErrSlotNotAvailable},
		{validate_slot.MsgOutsideWindow, ErrHealerUnavailable},
		{validate_slot.MsgMisaligned, ErrMisaligned},
		{validate_slot.MsgPastTime, ErrPastTime},
		{validate_slot.MsgHealerNotFound, ErrNotReschedulable},
		{validate_slot.MsgServiceNotFound, ErrNotReschedulable},
	}

	for _, tt := range tests {
		t.Run(tt.reason, func(t *testing.T) {
			bookings := &fakeBookingRepo{booking: reschedulableBooking()}
			uc := newTestUseCase(bookings, &fakeValidator{result: &validate_slot.CheckResult{Reason: tt.reason}})

			_, err := uc.Execute(context.Background(), &Request{UserID: 5, BookingID: 10, NewScheduledAt: testNow.Add(72 * time.Hour)})

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, bookings.rescheduled)
		})
	}
}
