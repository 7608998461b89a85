package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBooking_Overlaps(t *testing.T) {
	start := time.Date(2025, 6, 10, 10, 0, 0, 0, time.UTC)
	booking := &Booking{
		ScheduledAt:     start,
		DurationMinutes: 60,
	}

	tests := []struct {
		name string
		from time.Time
		to   time.Time
		want bool
	}{
		{
			name: "identical interval overlaps",
			from: start,
			to:   start.Add(time.Hour),
			want: true,
		},
		{
			name: "partial overlap at the end",
			from: start.Add(30 * time.Minute),
			to:   start.Add(90 * time.Minute),
			want: true,
		},
		{
			name: "adjacent interval after does not overlap",
			from: start.Add(time.Hour),
			to:   start.Add(2 * time.Hour),
			want: false,
		},
		{
			name: "adjacent interval before does not overlap",
			from: start.Add(-time.Hour),
			to:   start,
			want: false,
		},
		{
			name: "containing interval overlaps",
			from: start.Add(-time.Hour),
			to:   start.Add(2 * time.Hour),
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, booking.Overlaps(tt.from, tt.to))
		})
	}
}

func TestBooking_StatusPredicates(t *testing.T) {
	active := []BookingStatus{StatusPending, StatusScheduled, StatusConfirmed, StatusRescheduled}
	for _, status := range active {
		b := &Booking{Status: status}
		assert.True(t, b.IsActive(), "status %s should occupy its slot", status)
		assert.True(t, b.CanBeRescheduled(), "status %s should be reschedulable", status)
	}

	cancelled := &Booking{Status: StatusCancelled}
	assert.False(t, cancelled.IsActive())
	assert.True(t, cancelled.IsCancelled())
	assert.True(t, cancelled.CanBeCancelled())

	completed := &Booking{Status: StatusCompleted}
	assert.False(t, completed.IsActive())
	assert.True(t, completed.IsCompleted())
	assert.False(t, completed.CanBeCancelled())
	assert.False(t, completed.CanBeRescheduled())
}

func TestBooking_LeadTime(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	b := &Booking{ScheduledAt: now.Add(36 * time.Hour)}

	assert.Equal(t, 36*time.Hour, b.LeadTime(now))
}
