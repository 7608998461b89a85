package validate_slot

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-WellnessBooking/internal/domain"
	healerRepo "github.com/m04kA/SMC-WellnessBooking/internal/infra/storage/healer"
	serviceRepo "github.com/m04kA/SMC-WellnessBooking/internal/infra/storage/service"
)

type fakeBookingRepo struct {
	bookings []*domain.Booking
	err      error
}

func (f *fakeBookingRepo) GetByHealerAndRange(_ context.Context, _ int64, from, to time.Time, _ bool) ([]*domain.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	result := make([]*domain.Booking, 0)
	for _, b := range f.bookings {
		if b.ScheduledAt.Before(to) && !b.ScheduledAt.Before(from) {
			result = append(result, b)
		}
	}
	return result, nil
}

type fakeHealerRepo struct {
	healer *domain.Healer
	err    error
}

func (f *fakeHealerRepo) GetByID(_ context.Context, _ int64) (*domain.Healer, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.healer, nil
}

type fakeServiceRepo struct {
	service *domain.Service
	err     error
}

func (f *fakeServiceRepo) GetByID(_ context.Context, _ int64) (*domain.Service, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.service, nil
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

// testNow вторник 2025-06-10 09:00 UTC
var testNow = time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)

func activeHealer() *domain.Healer {
	return &domain.Healer{
		ID:       1,
		Name:     "Asha",
		IsActive: true,
		Availability: domain.WeeklyAvailability{
			"monday":  {Start: "10:00", End: "17:00"},
			"tuesday": {Start: "10:00", End: "17:00"},
		},
	}
}

func activeService() *domain.Service {
	return &domain.Service{
		ID:              2,
		Name:            "Deep Tissue Massage",
		DurationMinutes: 60,
		PricePaise:      150000,
		IsActive:        true,
	}
}

func newTestUseCase(bookings *fakeBookingRepo, healers *fakeHealerRepo, services *fakeServiceRepo) *UseCase {
	uc := NewUseCase(bookings, healers, services, noopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: testNow}
	return uc
}

func TestCheck_ValidSlot(t *testing.T) {
	uc := newTestUseCase(
		&fakeBookingRepo{},
		&fakeHealerRepo{healer: activeHealer()},
		&fakeServiceRepo{service: activeService()},
	)

	result, err := uc.Check(context.Background(), 1, 2, time.Date(2025, 6, 10, 10, 30, 0, 0, time.UTC), testNow, nil)

	require.NoError(t, err)
	assert.True(t, result.Valid)
	assert.Empty(t, result.Reason)
	assert.NotNil(t, result.Healer)
	assert.NotNil(t, result.Service)
}

func TestCheck_PastTime(t *testing.T) {
	uc := newTestUseCase(
		&fakeBookingRepo{},
		&fakeHealerRepo{healer: activeHealer()},
		&fakeServiceRepo{service: activeService()},
	)

	result, err := uc.Check(context.Background(), 1, 2, testNow.Add(-time.Hour), testNow, nil)

	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Equal(t, MsgPastTime, result.Reason)
}

func TestCheck_NowIsNotFuture(t *testing.T) {
	uc := newTestUseCase(
		&fakeBookingRepo{},
		&fakeHealerRepo{healer: activeHealer()},
		&fakeServiceRepo{service: activeService()},
	)

	result, err := uc.Check(context.Background(), 1, 2, testNow, testNow, nil)

	require.NoError(t, err)
	assert.Equal(t, MsgPastTime, result.Reason)
}

func TestCheck_Misaligned(t *testing.T) {
	uc := newTestUseCase(
		&fakeBookingRepo{},
		&fakeHealerRepo{healer: activeHealer()},
		&fakeServiceRepo{service: activeService()},
	)

	misaligned := time.Date(2025, 6, 10, 10, 15, 0, 0, time.UTC)
	result, err := uc.Check(context.Background(), 1, 2, misaligned, testNow, nil)

	require.NoError(t, err)
	assert.Equal(t, MsgMisaligned, result.Reason)
}

func TestCheck_HealerNotFound(t *testing.T) {
	uc := newTestUseCase(
		&fakeBookingRepo{},
		&fakeHealerRepo{err: healerRepo.ErrHealerNotFound},
		&fakeServiceRepo{service: activeService()},
	)

	result, err := uc.Check(context.Background(), 1, 2, testNow.Add(25*time.Hour), testNow, nil)

	require.NoError(t, err)
	assert.Equal(t, MsgHealerNotFound, result.Reason)
}

func TestCheck_InactiveHealer(t *testing.T) {
	healer := activeHealer()
	healer.IsActive = false

	uc := newTestUseCase(
		&fakeBookingRepo{},
		&fakeHealerRepo{healer: healer},
		&fakeServiceRepo{service: activeService()},
	)

	result, err := uc.Check(context.Background(), 1, 2, testNow.Add(25*time.Hour), testNow, nil)

	require.NoError(t, err)
	assert.Equal(t, MsgHealerNotFound, result.Reason)
}

func TestCheck_ServiceNotFound(t *testing.T) {
	uc := newTestUseCase(
		&fakeBookingRepo{},
		&fakeHealerRepo{healer: activeHealer()},
		&fakeServiceRepo{err: serviceRepo.ErrServiceNotFound},
	)

	result, err := uc.Check(context.Background(), 1, 2, testNow.Add(25*time.Hour), testNow, nil)

	require.NoError(t, err)
	assert.Equal(t, MsgServiceNotFound, result.Reason)
}

func TestCheck_InactiveService(t *testing.T) {
	service := activeService()
	service.IsActive = false

	uc := newTestUseCase(
		&fakeBookingRepo{},
		&fakeHealerRepo{healer: activeHealer()},
		&fakeServiceRepo{service: service},
	)

	result, err := uc.Check(context.Background(), 1, 2, testNow.Add(25*time.Hour), testNow, nil)

	require.NoError(t, err)
	assert.Equal(t, MsgServiceNotFound, result.Reason)
}

func TestCheck_OutsideWindow(t *testing.T) {
	uc := newTestUseCase(
		&fakeBookingRepo{},
		&fakeHealerRepo{healer: activeHealer()},
		&fakeServiceRepo{service: activeService()},
	)

	// Среда - выходной мастера
	dayOff := time.Date(2025, 6, 11, 11, 0, 0, 0, time.UTC)
	result, err := uc.Check(context.Background(), 1, 2, dayOff, testNow, nil)

	require.NoError(t, err)
	assert.Equal(t, MsgOutsideWindow, result.Reason)

	// Вторник, но позже конца окна
	late := time.Date(2025, 6, 10, 18, 0, 0, 0, time.UTC)
	result, err = uc.Check(context.Background(), 1, 2, late, testNow, nil)

	require.NoError(t, err)
	assert.Equal(t, MsgOutsideWindow, result.Reason)
}

func TestCheck_WindowEndExcluded(t *testing.T) {
	uc := newTestUseCase(
		&fakeBookingRepo{},
		&fakeHealerRepo{healer: activeHealer()},
		&fakeServiceRepo{service: activeService()},
	)

	atEnd := time.Date(2025, 6, 10, 17, 0, 0, 0, time.UTC)
	result, err := uc.Check(context.Background(), 1, 2, atEnd, testNow, nil)

	require.NoError(t, err)
	assert.Equal(t, MsgOutsideWindow, result.Reason)
}

func TestCheck_SlotTakenByOverlappingBooking(t *testing.T) {
	occupied := &domain.Booking{
		ID:              77,
		HealerID:        1,
		ScheduledAt:     time.Date(2025, 6, 10, 10, 0, 0, 0, time.UTC),
		DurationMinutes: 60,
		Status:          domain.StatusConfirmed,
	}

	uc := newTestUseCase(
		&fakeBookingRepo{bookings: []*domain.Booking{occupied}},
		&fakeHealerRepo{healer: activeHealer()},
		&fakeServiceRepo{service: activeService()},
	)

	// 10:30 пересекается с бронированием 10:00-11:00
	proposed := time.Date(2025, 6, 10, 10, 30, 0, 0, time.UTC)
	result, err := uc.Check(context.Background(), 1, 2, proposed, testNow, nil)

	require.NoError(t, err)
	assert.Equal(t, MsgSlotTaken, result.Reason)

	// 11:00 граничит, но не пересекается
	adjacent := time.Date(2025, 6, 10, 11, 0, 0, 0, time.UTC)
	result, err = uc.Check(context.Background(), 1, 2, adjacent, testNow, nil)

	require.NoError(t, err)
	assert.True(t, result.Valid)
}

func TestCheck_ExcludedBookingIgnored(t *testing.T) {
	own := &domain.Booking{
		ID:              77,
		HealerID:        1,
		ScheduledAt:     time.Date(2025, 6, 10, 10, 30, 0, 0, time.UTC),
		DurationMinutes: 60,
		Status:          domain.StatusConfirmed,
	}

	uc := newTestUseCase(
		&fakeBookingRepo{bookings: []*domain.Booking{own}},
		&fakeHealerRepo{healer: activeHealer()},
		&fakeServiceRepo{service: activeService()},
	)

	excludeID := int64(77)
	proposed := time.Date(2025, 6, 10, 10, 30, 0, 0, time.UTC)
	result, err := uc.Check(context.Background(), 1, 2, proposed, testNow, &excludeID)

	require.NoError(t, err)
	assert.True(t, result.Valid)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := newTestUseCase(
		&fakeBookingRepo{},
		&fakeHealerRepo{healer: activeHealer()},
		&fakeServiceRepo{service: activeService()},
	)

	_, err := uc.Execute(context.Background(), &Request{HealerID: 0, ServiceID: 2, ScheduledAt: testNow.Add(time.Hour)})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{HealerID: 1, ServiceID: 2})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_ReturnsReasonWithoutError(t *testing.T) {
	uc := newTestUseCase(
		&fakeBookingRepo{},
		&fakeHealerRepo{healer: activeHealer()},
		&fakeServiceRepo{service: activeService()},
	)

	resp, err := uc.Execute(context.Background(), &Request{
		HealerID:    1,
		ServiceID:   2,
		ScheduledAt: testNow.Add(-time.Hour),
	})

	require.NoError(t, err)
	assert.False(t, resp.Valid)
	assert.Equal(t, MsgPastTime, resp.Error)
}
