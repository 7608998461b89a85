package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	ts, err := NewTimeStringFromString("10:30")
	require.NoError(t, err)
	assert.Equal(t, "10:30", ts.String())

	for _, s := range []string{"", "10", "25:00", "10:61", "10:30:00", "ten"} {
		_, err := NewTimeStringFromString(s)
		assert.ErrorIs(t, err, ErrInvalidTimeString, "input %q", s)
	}
}

func TestMinutes(t *testing.T) {
	m, err := TimeString("10:30").Minutes()
	require.NoError(t, err)
	assert.Equal(t, 630, m)

	m, err = TimeString("00:00").Minutes()
	require.NoError(t, err)
	assert.Equal(t, 0, m)
}

func TestComparisons(t *testing.T) {
	assert.True(t, TimeString("10:00").IsBefore(TimeString("10:30")))
	assert.False(t, TimeString("10:30").IsBefore(TimeString("10:30")))
	assert.True(t, TimeString("17:00").IsAfter(TimeString("10:00")))
	assert.False(t, TimeString("10:00").IsAfter(TimeString("10:00")))

	// Некорректные значения не считаются ни раньше, ни позже
	assert.False(t, TimeString("bad").IsBefore(TimeString("10:00")))
	assert.False(t, TimeString("bad").IsAfter(TimeString("10:00")))
}

func TestAddMinutes(t *testing.T) {
	ts, err := TimeString("10:00").AddMinutes(30)
	require.NoError(t, err)
	assert.Equal(t, TimeString("10:30"), ts)

	ts, err = TimeString("19:30").AddMinutes(30)
	require.NoError(t, err)
	assert.Equal(t, TimeString("20:00"), ts)

	// 24:00 допустимо как граница интервала
	ts, err = TimeString("23:30").AddMinutes(30)
	require.NoError(t, err)
	assert.Equal(t, TimeString("24:00"), ts)

	_, err = TimeString("23:31").AddMinutes(30)
	assert.ErrorIs(t, err, ErrInvalidMinutes)

	_, err = TimeString("00:10").AddMinutes(-20)
	assert.ErrorIs(t, err, ErrInvalidMinutes)
}

func TestScan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan("10:00:00"))
	assert.Equal(t, TimeString("10:00"), ts)

	require.NoError(t, ts.Scan([]byte("17:30")))
	assert.Equal(t, TimeString("17:30"), ts)

	require.NoError(t, ts.Scan(time.Date(2025, 6, 10, 12, 45, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("12:45"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.Error(t, ts.Scan(42))
}

func TestValue(t *testing.T) {
	v, err := TimeString("10:00").Value()
	require.NoError(t, err)
	assert.Equal(t, "10:00", v)

	v, err = TimeString("").Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	_, err = TimeString("bad").Value()
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}
