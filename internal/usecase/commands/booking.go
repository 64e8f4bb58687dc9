package commands

import (
	"context"
	"time"

	"shareit/internal/domain/booking"
	"shareit/internal/infra"
	"shareit/internal/infra/db"
	"shareit/internal/pkg/errs"
	"shareit/internal/usecase/queries"
)

var (
	ErrItemNotFound            = errs.New("item not found")
	ErrUserNotFound            = errs.New("user not found")
	ErrBookingNotFound         = errs.New("booking not found")
	ErrNotItemOwner            = errs.New("only the item owner may decide a booking")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

type CreateBookingInput struct {
	ItemID int64
	Start  time.Time
	End    time.Time
}

type BookingCommands interface {
	Create(ctx context.Context, actorID int64, input CreateBookingInput) (*queries.BookingView, error)
	Approve(ctx context.Context, ownerID, bookingID int64, approved bool) (*queries.BookingView, error)
}

type bookingCommandsImpl struct {
	uow      UnitOfWork
	bookings BookingRepository
	reads    CommandReads
	views    queries.BookingViewRepo
}

func NewBookingCommands(uow UnitOfWork, bookings BookingRepository, reads CommandReads, views queries.BookingViewRepo) BookingCommands {
	return &bookingCommandsImpl{
		uow:      uow,
		bookings: bookings,
		reads:    reads,
		views:    views,
	}
}

// Create persists a WAITING booking. Preconditions fail in a fixed
// order: item exists, actor exists, interval well-formed, actor is not
// the owner, item available. The first broken one wins.
func (c *bookingCommandsImpl) Create(ctx context.Context, actorID int64, input CreateBookingInput) (*queries.BookingView, error) {
	itemSnap, err := c.reads.ItemByID(ctx, input.ItemID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrItemNotFound)
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if err := c.requireUser(ctx, actorID); err != nil {
		return nil, err
	}

	entity, err := booking.NewBooking(booking.ItemSpec{
		ID:        itemSnap.ID,
		Name:      itemSnap.Name,
		OwnerID:   itemSnap.OwnerID,
		Available: itemSnap.Available,
	}, actorID, input.Start, input.End)
	if err != nil {
		return nil, err
	}

	var createdID int64
	err = c.uow.Within(ctx, func(ctx context.Context, tx db.DBTX) error {
		id, txErr := c.bookings.Create(ctx, tx, entity)
		if txErr != nil {
			return txErr
		}
		createdID = id
		return nil
	})
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return c.readBack(ctx, createdID)
}

// Approve settles a WAITING booking exactly once; repeating the call
// fails instead of silently no-opping.
func (c *bookingCommandsImpl) Approve(ctx context.Context, ownerID, bookingID int64, approved bool) (*queries.BookingView, error) {
	snap, err := c.reads.BookingByID(ctx, bookingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrBookingNotFound)
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if snap.ItemOwnerID != ownerID {
		return nil, ErrNotItemOwner
	}

	entity := booking.Reconstruct(snap.ID, snap.Start, snap.End, snap.ItemID, snap.BookerID, snap.Status)
	if err := entity.Decide(approved); err != nil {
		return nil, err
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx db.DBTX) error {
		return c.bookings.SetStatus(ctx, tx, entity.ID(), entity.Status())
	})
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return c.readBack(ctx, bookingID)
}

// Read-after-write: the denormalized view (item name, booker id) comes
// from the read store once the transaction committed.
func (c *bookingCommandsImpl) readBack(ctx context.Context, id int64) (*queries.BookingView, error) {
	view, err := c.views.FindByID(ctx, id)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return view, nil
}

func (c *bookingCommandsImpl) requireUser(ctx context.Context, id int64) error {
	exists, err := c.reads.UserExists(ctx, id)
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if !exists {
		return errs.Mark(errs.Newf("user %d not found", id), ErrUserNotFound)
	}
	return nil
}
