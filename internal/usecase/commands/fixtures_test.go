//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"shareit/internal/domain/booking"
	"shareit/internal/domain/item"
	"shareit/internal/domain/user"
	"shareit/internal/infra/inmem"
	"shareit/internal/pkg/clock"
	"shareit/internal/usecase/commands"

	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

type env struct {
	store *inmem.Store
	clock *clock.MockClock

	bookings commands.BookingCommands
	items    commands.ItemCommands
	users    commands.UserCommands
	requests commands.RequestCommands
}

func newEnv(t *testing.T) *env {
	t.Helper()
	store := inmem.NewStore()
	clk := clock.NewMockClock(baseTime)

	return &env{
		store:    store,
		clock:    clk,
		bookings: commands.NewBookingCommands(store, store.BookingRepo(), store, store.BookingViews()),
		items:    commands.NewItemCommands(store, store.ItemRepo(), store.CommentRepo(), store.UserRepo(), store, clk),
		users:    commands.NewUserCommands(store, store.UserRepo()),
		requests: commands.NewRequestCommands(store, store.RequestRepo(), store, clk),
	}
}

func (e *env) seedUser(t *testing.T, name, email string) int64 {
	t.Helper()
	addr, err := user.NewEmail(email)
	require.NoError(t, err)
	u, err := user.NewUser(name, addr)
	require.NoError(t, err)
	id, err := e.store.UserRepo().Create(context.Background(), nil, u)
	require.NoError(t, err)
	return id
}

func (e *env) seedItem(t *testing.T, name string, ownerID int64, available bool) int64 {
	t.Helper()
	it, err := item.NewItem(name, name+" description", available, ownerID, nil)
	require.NoError(t, err)
	id, err := e.store.ItemRepo().Create(context.Background(), nil, it)
	require.NoError(t, err)
	return id
}

func (e *env) seedBooking(t *testing.T, itemID, bookerID int64, start, end time.Time, status booking.Status) int64 {
	t.Helper()
	spec := booking.ItemSpec{ID: itemID, OwnerID: -1, Available: true}
	b, err := booking.NewBooking(spec, bookerID, start, end)
	require.NoError(t, err)
	id, err := e.store.BookingRepo().Create(context.Background(), nil, b)
	require.NoError(t, err)
	if status != booking.StatusWaiting {
		require.NoError(t, e.store.BookingRepo().SetStatus(context.Background(), nil, id, status))
	}
	return id
}
