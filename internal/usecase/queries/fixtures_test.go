//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"shareit/internal/domain/booking"
	"shareit/internal/domain/item"
	"shareit/internal/domain/request"
	"shareit/internal/domain/user"
	"shareit/internal/infra/inmem"
	"shareit/internal/pkg/clock"
	"shareit/internal/usecase/queries"

	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

type env struct {
	store *inmem.Store
	clock *clock.MockClock

	bookings queries.BookingQueries
	items    queries.ItemQueries
	users    queries.UserQueries
	requests queries.RequestQueries
}

func newEnv(t *testing.T) *env {
	t.Helper()
	store := inmem.NewStore()
	clk := clock.NewMockClock(baseTime)

	return &env{
		store:    store,
		clock:    clk,
		bookings: queries.NewBookingQueries(store.BookingViews(), store.UserViews(), clk),
		items:    queries.NewItemQueries(store.ItemViews(), store.CommentViews(), store.BookingViews(), store.UserViews(), clk),
		users:    queries.NewUserQueries(store.UserViews()),
		requests: queries.NewRequestQueries(store.RequestViews(), store.UserViews()),
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

func (e *env) seedItemForRequest(t *testing.T, name string, ownerID, requestID int64) int64 {
	t.Helper()
	it, err := item.NewItem(name, name+" description", true, ownerID, &requestID)
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

func (e *env) seedComment(t *testing.T, text string, itemID, authorID int64, created time.Time) int64 {
	t.Helper()
	c, err := item.NewComment(text, itemID, authorID, created)
	require.NoError(t, err)
	id, err := e.store.CommentRepo().Create(context.Background(), nil, c)
	require.NoError(t, err)
	return id
}

func (e *env) seedRequest(t *testing.T, description string, requestorID int64, created time.Time) int64 {
	t.Helper()
	r, err := request.NewItemRequest(description, requestorID, created)
	require.NoError(t, err)
	id, err := e.store.RequestRepo().Create(context.Background(), nil, r)
	require.NoError(t, err)
	return id
}

func viewIDs(views []*queries.BookingView) []int64 {
	ids := make([]int64, len(views))
	for i, v := range views {
		ids[i] = v.ID
	}
	return ids
}
