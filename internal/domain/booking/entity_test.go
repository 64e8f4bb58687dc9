//go:build unit

package booking_test

import (
	"testing"
	"time"

	"shareit/internal/domain/booking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func availableItem() booking.ItemSpec {
	return booking.ItemSpec{ID: 10, Name: "drill", OwnerID: 1, Available: true}
}

func TestNewBooking(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("basic success case", func(t *testing.T) {
		b, err := booking.NewBooking(availableItem(), 2, now.Add(24*time.Hour), now.Add(48*time.Hour))
		require.NoError(t, err)
		require.NotNil(t, b)

		assert.Equal(t, booking.StatusWaiting, b.Status())
		assert.Equal(t, int64(10), b.ItemID())
		assert.Equal(t, int64(2), b.BookerID())
	})

	t.Run("interval validation", func(t *testing.T) {
		cases := []struct {
			name       string
			start, end time.Time
			errIs      error
		}{
			{name: "zero start", start: time.Time{}, end: now, errIs: booking.ErrInvalidInterval},
			{name: "zero end", start: now, end: time.Time{}, errIs: booking.ErrInvalidInterval},
			{name: "start equals end", start: now, end: now, errIs: booking.ErrInvalidInterval},
			{name: "start after end", start: now.Add(time.Hour), end: now, errIs: booking.ErrInvalidInterval},
			{name: "start before end", start: now, end: now.Add(time.Hour)},
		}
		for _, c := range cases {
			t.Run(c.name, func(t *testing.T) {
				_, err := booking.NewBooking(availableItem(), 2, c.start, c.end)
				if c.errIs != nil {
					require.ErrorIs(t, err, c.errIs)
					return
				}
				require.NoError(t, err)
			})
		}
	})

	t.Run("owner cannot book own item", func(t *testing.T) {
		_, err := booking.NewBooking(availableItem(), 1, now, now.Add(time.Hour))
		require.ErrorIs(t, err, booking.ErrOwnItemBooking)
	})

	t.Run("unavailable item is rejected", func(t *testing.T) {
		item := availableItem()
		item.Available = false
		_, err := booking.NewBooking(item, 2, now, now.Add(time.Hour))
		require.ErrorIs(t, err, booking.ErrItemUnavailable)
	})

	t.Run("interval check precedes ownership check", func(t *testing.T) {
		// Owner with a broken interval: the interval error wins.
		_, err := booking.NewBooking(availableItem(), 1, now.Add(time.Hour), now)
		require.ErrorIs(t, err, booking.ErrInvalidInterval)
	})
}

func TestDecide(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	newWaiting := func(t *testing.T) *booking.Booking {
		t.Helper()
		b, err := booking.NewBooking(availableItem(), 2, now, now.Add(time.Hour))
		require.NoError(t, err)
		return b
	}

	t.Run("approve settles to APPROVED", func(t *testing.T) {
		b := newWaiting(t)
		require.NoError(t, b.Decide(true))
		assert.Equal(t, booking.StatusApproved, b.Status())
	})

	t.Run("reject settles to REJECTED", func(t *testing.T) {
		b := newWaiting(t)
		require.NoError(t, b.Decide(false))
		assert.Equal(t, booking.StatusRejected, b.Status())
	})

	t.Run("second decision fails even with the same flag", func(t *testing.T) {
		b := newWaiting(t)
		require.NoError(t, b.Decide(true))

		err := b.Decide(true)
		require.ErrorIs(t, err, booking.ErrAlreadyDecided)
		assert.Equal(t, booking.StatusApproved, b.Status())
	})

	t.Run("rejected booking cannot be approved later", func(t *testing.T) {
		b := newWaiting(t)
		require.NoError(t, b.Decide(false))
		require.ErrorIs(t, b.Decide(true), booking.ErrAlreadyDecided)
		assert.Equal(t, booking.StatusRejected, b.Status())
	})
}

func TestStatusSettled(t *testing.T) {
	assert.False(t, booking.StatusWaiting.Settled())
	assert.True(t, booking.StatusApproved.Settled())
	assert.True(t, booking.StatusRejected.Settled())
}
