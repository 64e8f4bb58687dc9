// Package inmem is a map-backed implementation of every storage port,
// interchangeable with the postgres one for tests. Constraint behavior
// mirrors the database: duplicate emails and missing rows surface as
// the same repository error kinds.
package inmem

import (
	"context"
	"sync"
	"time"

	"shareit/internal/domain/booking"
	"shareit/internal/infra"
	"shareit/internal/infra/db"
	"shareit/internal/usecase/commands"
)

type userRow struct {
	id    int64
	name  string
	email string
}

type itemRow struct {
	id          int64
	name        string
	description string
	available   bool
	ownerID     int64
	requestID   *int64
}

type bookingRow struct {
	id       int64
	start    time.Time
	end      time.Time
	itemID   int64
	bookerID int64
	status   booking.Status
}

type commentRow struct {
	id       int64
	text     string
	itemID   int64
	authorID int64
	created  time.Time
}

type requestRow struct {
	id          int64
	description string
	requestorID int64
	created     time.Time
}

type Store struct {
	mu       sync.Mutex
	users    map[int64]*userRow
	items    map[int64]*itemRow
	bookings map[int64]*bookingRow
	comments map[int64]*commentRow
	requests map[int64]*requestRow
	nextID   int64
}

func NewStore() *Store {
	return &Store{
		users:    make(map[int64]*userRow),
		items:    make(map[int64]*itemRow),
		bookings: make(map[int64]*bookingRow),
		comments: make(map[int64]*commentRow),
		requests: make(map[int64]*requestRow),
	}
}

// Within implements the unit of work with no real transaction: the
// store mutates in place and fn receives a nil handle, which the
// in-memory repositories ignore.
func (s *Store) Within(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	return fn(ctx, nil)
}

func (s *Store) allocID() int64 {
	s.nextID++
	return s.nextID
}

// Command-side precondition reads.

func (s *Store) ItemByID(_ context.Context, id int64) (*commands.ItemSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.items[id]
	if !ok {
		return nil, infra.WrapRepoErr("item not found", nil, infra.KindNotFound)
	}
	return &commands.ItemSnapshot{
		ID:        row.id,
		Name:      row.name,
		OwnerID:   row.ownerID,
		Available: row.available,
		RequestID: row.requestID,
	}, nil
}

func (s *Store) UserExists(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.users[id]
	return ok, nil
}

func (s *Store) RequestExists(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.requests[id]
	return ok, nil
}

func (s *Store) BookingByID(_ context.Context, id int64) (*commands.BookingSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.bookings[id]
	if !ok {
		return nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	it, ok := s.items[row.itemID]
	if !ok {
		return nil, infra.WrapRepoErr("item of booking not found", nil, infra.KindNotFound)
	}
	return &commands.BookingSnapshot{
		ID:          row.id,
		Start:       row.start,
		End:         row.end,
		ItemID:      row.itemID,
		BookerID:    row.bookerID,
		ItemOwnerID: it.ownerID,
		Status:      row.status,
	}, nil
}

func (s *Store) HasFinishedBooking(_ context.Context, bookerID, itemID int64, before time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, row := range s.bookings {
		if row.bookerID == bookerID && row.itemID == itemID &&
			row.status == booking.StatusApproved && row.end.Before(before) {
			return true, nil
		}
	}
	return false, nil
}
