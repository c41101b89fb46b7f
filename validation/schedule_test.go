package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func at(y int, m time.Month, d, hour, min int) time.Time {
	return time.Date(y, m, d, hour, min, 0, 0, time.UTC)
}

func TestEarliestPickupDate(t *testing.T) {
	t.Run("before cutoff needs two days", func(t *testing.T) {
		now := at(2026, time.March, 10, 14, 59)
		assert.Equal(t, date(2026, time.March, 12), EarliestPickupDate(now))
	})

	t.Run("at cutoff needs three days", func(t *testing.T) {
		now := at(2026, time.March, 10, 15, 0)
		assert.Equal(t, date(2026, time.March, 13), EarliestPickupDate(now))
	})

	t.Run("after cutoff needs three days", func(t *testing.T) {
		now := at(2026, time.March, 10, 22, 30)
		assert.Equal(t, date(2026, time.March, 13), EarliestPickupDate(now))
	})

	t.Run("result is midnight normalized", func(t *testing.T) {
		got := EarliestPickupDate(at(2026, time.March, 10, 9, 45))
		assert.Equal(t, 0, got.Hour())
		assert.Equal(t, 0, got.Minute())
	})
}

func TestEarliestPickupTime(t *testing.T) {
	// 48h after 10:30 is 10:30 two days later; the slot floor is 10:00.
	assert.Equal(t, "10:00", EarliestPickupTime(at(2026, time.March, 10, 10, 30)))
	assert.Equal(t, "00:00", EarliestPickupTime(at(2026, time.March, 10, 0, 0)))
	assert.Equal(t, "23:00", EarliestPickupTime(at(2026, time.March, 10, 23, 59)))
}

func TestAvailableTimeSlots(t *testing.T) {
	now := at(2026, time.March, 10, 10, 30)

	t.Run("earliest date filters early slots", func(t *testing.T) {
		slots := AvailableTimeSlots(date(2026, time.March, 12), now)
		require.NotEmpty(t, slots)
		assert.Equal(t, "10:00", slots[0])
		assert.Equal(t, "23:00", slots[len(slots)-1])
		assert.Len(t, slots, 14)
	})

	t.Run("later dates get the full day", func(t *testing.T) {
		slots := AvailableTimeSlots(date(2026, time.March, 13), now)
		assert.Len(t, slots, 24)
		assert.Equal(t, "00:00", slots[0])
	})
}

func TestIsDateDisabled(t *testing.T) {
	now := at(2026, time.March, 10, 10, 30)

	assert.True(t, IsDateDisabled(date(2026, time.March, 10), now))
	assert.True(t, IsDateDisabled(date(2026, time.March, 11), now))
	assert.False(t, IsDateDisabled(date(2026, time.March, 12), now))
	assert.False(t, IsDateDisabled(date(2026, time.April, 1), now))
}

func TestValidateBookingDates(t *testing.T) {
	now := at(2026, time.March, 10, 10, 30)

	t.Run("valid pair passes", func(t *testing.T) {
		err := ValidateBookingDates(date(2026, time.March, 12), "10:00", date(2026, time.March, 14), "10:00", now)
		assert.Nil(t, err)
	})

	t.Run("missing fields surface in fixed order", func(t *testing.T) {
		err := ValidateBookingDates(time.Time{}, "", time.Time{}, "", now)
		require.NotNil(t, err)
		assert.Equal(t, FieldPickupDate, err.Field)

		err = ValidateBookingDates(date(2026, time.March, 12), "", time.Time{}, "", now)
		require.NotNil(t, err)
		assert.Equal(t, FieldPickupTime, err.Field)

		err = ValidateBookingDates(date(2026, time.March, 12), "10:00", time.Time{}, "", now)
		require.NotNil(t, err)
		assert.Equal(t, FieldDropoffDate, err.Field)
	})

	t.Run("too-early date before cutoff mentions lead time", func(t *testing.T) {
		err := ValidateBookingDates(date(2026, time.March, 11), "10:00", date(2026, time.March, 14), "10:00", now)
		require.NotNil(t, err)
		assert.Equal(t, FieldPickupDate, err.Field)
		assert.Contains(t, err.Message, "48 Stunden")
	})

	t.Run("too-early date after cutoff mentions preparation day", func(t *testing.T) {
		lateNow := at(2026, time.March, 10, 16, 0)
		err := ValidateBookingDates(date(2026, time.March, 12), "10:00", date(2026, time.March, 14), "10:00", lateNow)
		require.NotNil(t, err)
		assert.Equal(t, FieldPickupDate, err.Field)
		assert.Contains(t, err.Message, "Vorbereitungstag")
	})

	t.Run("earliest date rejects slots before the floor", func(t *testing.T) {
		err := ValidateBookingDates(date(2026, time.March, 12), "09:00", date(2026, time.March, 14), "10:00", now)
		require.NotNil(t, err)
		assert.Equal(t, FieldPickupTime, err.Field)
	})

	t.Run("earliest date accepts the floor slot", func(t *testing.T) {
		err := ValidateBookingDates(date(2026, time.March, 12), "10:00", date(2026, time.March, 14), "10:00", now)
		assert.Nil(t, err)
	})

	t.Run("time floor only binds the earliest date", func(t *testing.T) {
		err := ValidateBookingDates(date(2026, time.March, 13), "06:00", date(2026, time.March, 14), "10:00", now)
		assert.Nil(t, err)
	})

	t.Run("dropoff must come after pickup", func(t *testing.T) {
		err := ValidateBookingDates(date(2026, time.March, 12), "10:00", date(2026, time.March, 12), "10:00", now)
		require.NotNil(t, err)
		assert.Equal(t, FieldDropoffDate, err.Field)

		err = ValidateBookingDates(date(2026, time.March, 12), "10:00", date(2026, time.March, 12), "11:00", now)
		assert.Nil(t, err)
	})

	t.Run("invalid time of day is rejected", func(t *testing.T) {
		err := ValidateBookingDates(date(2026, time.March, 12), "25:00", date(2026, time.March, 14), "10:00", now)
		require.NotNil(t, err)
		assert.Equal(t, FieldPickupTime, err.Field)
	})

	t.Run("validation is repeatable", func(t *testing.T) {
		first := ValidateBookingDates(date(2026, time.March, 11), "10:00", date(2026, time.March, 14), "10:00", now)
		second := ValidateBookingDates(date(2026, time.March, 11), "10:00", date(2026, time.March, 14), "10:00", now)
		require.NotNil(t, first)
		require.NotNil(t, second)
		assert.Equal(t, *first, *second)
	})
}

func TestCombineDateTime(t *testing.T) {
	got, err := CombineDateTime(date(2026, time.March, 12), "09:30")
	require.NoError(t, err)
	assert.Equal(t, at(2026, time.March, 12, 9, 30), got)

	_, err = CombineDateTime(date(2026, time.March, 12), "24:00")
	assert.Error(t, err)

	_, err = CombineDateTime(date(2026, time.March, 12), "abc")
	assert.Error(t, err)
}
