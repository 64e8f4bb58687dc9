//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"shareit/internal/domain/booking"
	"shareit/internal/usecase/commands"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingCreate(t *testing.T) {
	ctx := context.Background()

	validInput := func(itemID int64) commands.CreateBookingInput {
		return commands.CreateBookingInput{
			ItemID: itemID,
			Start:  baseTime.Add(24 * time.Hour),
			End:    baseTime.Add(48 * time.Hour),
		}
	}

	t.Run("basic success case", func(t *testing.T) {
		e := newEnv(t)
		owner := e.seedUser(t, "owner", "owner@example.com")
		booker := e.seedUser(t, "booker", "booker@example.com")
		itemID := e.seedItem(t, "drill", owner, true)

		view, err := e.bookings.Create(ctx, booker, validInput(itemID))
		require.NoError(t, err)

		assert.Equal(t, booking.StatusWaiting.String(), view.Status)
		assert.Equal(t, itemID, view.Item.ID)
		assert.Equal(t, "drill", view.Item.Name)
		assert.Equal(t, booker, view.Booker.ID)
	})

	t.Run("missing item wins over missing actor", func(t *testing.T) {
		e := newEnv(t)
		// Neither item nor actor exists; the item check runs first.
		_, err := e.bookings.Create(ctx, 999, validInput(888))
		require.ErrorIs(t, err, commands.ErrItemNotFound)
	})

	t.Run("missing actor", func(t *testing.T) {
		e := newEnv(t)
		owner := e.seedUser(t, "owner", "owner@example.com")
		itemID := e.seedItem(t, "drill", owner, true)

		_, err := e.bookings.Create(ctx, 999, validInput(itemID))
		require.ErrorIs(t, err, commands.ErrUserNotFound)
	})

	t.Run("invalid interval wins over own-item check", func(t *testing.T) {
		e := newEnv(t)
		owner := e.seedUser(t, "owner", "owner@example.com")
		itemID := e.seedItem(t, "drill", owner, true)

		input := validInput(itemID)
		input.Start, input.End = input.End, input.Start
		_, err := e.bookings.Create(ctx, owner, input)
		require.ErrorIs(t, err, booking.ErrInvalidInterval)
	})

	t.Run("owner cannot book own item", func(t *testing.T) {
		e := newEnv(t)
		owner := e.seedUser(t, "owner", "owner@example.com")
		itemID := e.seedItem(t, "drill", owner, true)

		_, err := e.bookings.Create(ctx, owner, validInput(itemID))
		require.ErrorIs(t, err, booking.ErrOwnItemBooking)
	})

	t.Run("unavailable item", func(t *testing.T) {
		e := newEnv(t)
		owner := e.seedUser(t, "owner", "owner@example.com")
		booker := e.seedUser(t, "booker", "booker@example.com")
		itemID := e.seedItem(t, "drill", owner, false)

		_, err := e.bookings.Create(ctx, booker, validInput(itemID))
		require.ErrorIs(t, err, booking.ErrItemUnavailable)
	})

	t.Run("identical intervals do not conflict", func(t *testing.T) {
		// Double-booking the same slot is not prevented.
		e := newEnv(t)
		owner := e.seedUser(t, "owner", "owner@example.com")
		booker := e.seedUser(t, "booker", "booker@example.com")
		other := e.seedUser(t, "other", "other@example.com")
		itemID := e.seedItem(t, "drill", owner, true)

		_, err := e.bookings.Create(ctx, booker, validInput(itemID))
		require.NoError(t, err)
		_, err = e.bookings.Create(ctx, other, validInput(itemID))
		require.NoError(t, err)
	})
}

func TestBookingApprove(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*env, int64, int64, int64) {
		e := newEnv(t)
		owner := e.seedUser(t, "owner", "owner@example.com")
		booker := e.seedUser(t, "booker", "booker@example.com")
		itemID := e.seedItem(t, "drill", owner, true)
		view, err := e.bookings.Create(ctx, booker, commands.CreateBookingInput{
			ItemID: itemID,
			Start:  baseTime.Add(24 * time.Hour),
			End:    baseTime.Add(48 * time.Hour),
		})
		require.NoError(t, err)
		return e, owner, booker, view.ID
	}

	t.Run("approve", func(t *testing.T) {
		e, owner, _, bookingID := setup(t)

		view, err := e.bookings.Approve(ctx, owner, bookingID, true)
		require.NoError(t, err)
		assert.Equal(t, booking.StatusApproved.String(), view.Status)
	})

	t.Run("reject", func(t *testing.T) {
		e, owner, _, bookingID := setup(t)

		view, err := e.bookings.Approve(ctx, owner, bookingID, false)
		require.NoError(t, err)
		assert.Equal(t, booking.StatusRejected.String(), view.Status)
	})

	t.Run("second decision fails and keeps the first", func(t *testing.T) {
		e, owner, _, bookingID := setup(t)

		_, err := e.bookings.Approve(ctx, owner, bookingID, true)
		require.NoError(t, err)

		_, err = e.bookings.Approve(ctx, owner, bookingID, true)
		require.ErrorIs(t, err, booking.ErrAlreadyDecided)

		view, err := e.store.BookingViews().FindByID(ctx, bookingID)
		require.NoError(t, err)
		assert.Equal(t, booking.StatusApproved.String(), view.Status)
	})

	t.Run("only the item owner may decide", func(t *testing.T) {
		e, _, booker, bookingID := setup(t)

		_, err := e.bookings.Approve(ctx, booker, bookingID, true)
		require.ErrorIs(t, err, commands.ErrNotItemOwner)
	})

	t.Run("missing booking", func(t *testing.T) {
		e, owner, _, _ := setup(t)

		_, err := e.bookings.Approve(ctx, owner, 9999, true)
		require.ErrorIs(t, err, commands.ErrBookingNotFound)
	})
}
