package queries

import (
	"context"
	"time"

	"shareit/internal/domain/booking"
	"shareit/internal/infra"
	"shareit/internal/pkg/clock"
	"shareit/internal/pkg/errs"
)

var (
	ErrBookingNotFound = errs.New("booking not found")
	ErrUserNotFound    = errs.New("user not found")
	ErrViewForbidden   = errs.New("booking is visible only to the owner or the booker")
)

type BookingQueries interface {
	Get(ctx context.Context, actorID, bookingID int64) (*BookingView, error)
	ListByBooker(ctx context.Context, actorID int64, rawState string) ([]*BookingView, error)
	ListByOwner(ctx context.Context, actorID int64, rawState string) ([]*BookingView, error)
}

// BookingViewRepo is the read side of the booking record store: one
// canned query per bucket and role, each resolving item name and booker
// id eagerly. All list queries order by start descending.
type BookingViewRepo interface {
	FindByID(ctx context.Context, id int64) (*BookingView, error)

	FindByBooker(ctx context.Context, bookerID int64) ([]*BookingView, error)
	FindCurrentByBooker(ctx context.Context, bookerID int64, now time.Time) ([]*BookingView, error)
	FindPastByBooker(ctx context.Context, bookerID int64, now time.Time) ([]*BookingView, error)
	FindFutureByBooker(ctx context.Context, bookerID int64, now time.Time) ([]*BookingView, error)
	FindByBookerAndStatus(ctx context.Context, bookerID int64, status booking.Status) ([]*BookingView, error)

	FindByOwner(ctx context.Context, ownerID int64) ([]*BookingView, error)
	FindCurrentByOwner(ctx context.Context, ownerID int64, now time.Time) ([]*BookingView, error)
	FindPastByOwner(ctx context.Context, ownerID int64, now time.Time) ([]*BookingView, error)
	FindFutureByOwner(ctx context.Context, ownerID int64, now time.Time) ([]*BookingView, error)
	FindByOwnerAndStatus(ctx context.Context, ownerID int64, status booking.Status) ([]*BookingView, error)
}

// UserExistenceRepo is the slice of the user directory this query
// service needs: actors must exist even for the unfiltered bucket.
type UserExistenceRepo interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

type bucketQueryFn func(ctx context.Context, actorID int64, now time.Time) ([]*BookingView, error)

type bookingQueriesImpl struct {
	repo  BookingViewRepo
	users UserExistenceRepo
	clock clock.Clock

	byBooker map[booking.State]bucketQueryFn
	byOwner  map[booking.State]bucketQueryFn
}

func NewBookingQueries(repo BookingViewRepo, users UserExistenceRepo, clk clock.Clock) BookingQueries {
	q := &bookingQueriesImpl{
		repo:  repo,
		users: users,
		clock: clk,
	}

	// One query function per bucket; classification happens once, then
	// dispatch is a map lookup instead of scattered string comparisons.
	q.byBooker = map[booking.State]bucketQueryFn{
		booking.StateAll: func(ctx context.Context, id int64, _ time.Time) ([]*BookingView, error) {
			return repo.FindByBooker(ctx, id)
		},
		booking.StateCurrent: repo.FindCurrentByBooker,
		booking.StatePast:    repo.FindPastByBooker,
		booking.StateFuture:  repo.FindFutureByBooker,
		booking.StateWaiting: func(ctx context.Context, id int64, _ time.Time) ([]*BookingView, error) {
			return repo.FindByBookerAndStatus(ctx, id, booking.StatusWaiting)
		},
		booking.StateRejected: func(ctx context.Context, id int64, _ time.Time) ([]*BookingView, error) {
			return repo.FindByBookerAndStatus(ctx, id, booking.StatusRejected)
		},
	}
	q.byOwner = map[booking.State]bucketQueryFn{
		booking.StateAll: func(ctx context.Context, id int64, _ time.Time) ([]*BookingView, error) {
			return repo.FindByOwner(ctx, id)
		},
		booking.StateCurrent: repo.FindCurrentByOwner,
		booking.StatePast:    repo.FindPastByOwner,
		booking.StateFuture:  repo.FindFutureByOwner,
		booking.StateWaiting: func(ctx context.Context, id int64, _ time.Time) ([]*BookingView, error) {
			return repo.FindByOwnerAndStatus(ctx, id, booking.StatusWaiting)
		},
		booking.StateRejected: func(ctx context.Context, id int64, _ time.Time) ([]*BookingView, error) {
			return repo.FindByOwnerAndStatus(ctx, id, booking.StatusRejected)
		},
	}

	return q
}

func (q *bookingQueriesImpl) Get(ctx context.Context, actorID, bookingID int64) (*BookingView, error) {
	if err := q.requireUser(ctx, actorID); err != nil {
		return nil, err
	}

	view, err := q.repo.FindByID(ctx, bookingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrBookingNotFound)
		}
		return nil, err
	}

	if view.Booker.ID != actorID && view.ItemOwnerID != actorID {
		return nil, ErrViewForbidden
	}
	return view, nil
}

func (q *bookingQueriesImpl) ListByBooker(ctx context.Context, actorID int64, rawState string) ([]*BookingView, error) {
	return q.list(ctx, q.byBooker, actorID, rawState)
}

func (q *bookingQueriesImpl) ListByOwner(ctx context.Context, actorID int64, rawState string) ([]*BookingView, error) {
	return q.list(ctx, q.byOwner, actorID, rawState)
}

func (q *bookingQueriesImpl) list(ctx context.Context, dispatch map[booking.State]bucketQueryFn, actorID int64, rawState string) ([]*BookingView, error) {
	if err := q.requireUser(ctx, actorID); err != nil {
		return nil, err
	}

	state, err := booking.StateFrom(rawState)
	if err != nil {
		return nil, err
	}

	// A single "now" keeps CURRENT/PAST/FUTURE self-consistent within
	// one call.
	now := q.clock.Now()
	return dispatch[state](ctx, actorID, now)
}

func (q *bookingQueriesImpl) requireUser(ctx context.Context, id int64) error {
	exists, err := q.users.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return errs.Mark(errs.Newf("user %d not found", id), ErrUserNotFound)
	}
	return nil
}
