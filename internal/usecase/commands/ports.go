package commands

import (
	"context"
	"time"

	"shareit/internal/domain/booking"
	"shareit/internal/domain/item"
	"shareit/internal/domain/request"
	"shareit/internal/domain/user"
	"shareit/internal/infra/db"
)

// UnitOfWork runs fn as one atomic unit against the backing store:
// either every write inside fn commits, or none do.
type UnitOfWork interface {
	Within(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error
}

// CommandReads are the lookups commands need for precondition checks:
// minimal snapshots, no view shaping.
type CommandReads interface {
	ItemByID(ctx context.Context, id int64) (*ItemSnapshot, error)
	UserExists(ctx context.Context, id int64) (bool, error)
	RequestExists(ctx context.Context, id int64) (bool, error)
	BookingByID(ctx context.Context, id int64) (*BookingSnapshot, error)
	// HasFinishedBooking reports whether the user has an APPROVED
	// booking on the item that ended strictly before the given instant.
	HasFinishedBooking(ctx context.Context, bookerID, itemID int64, before time.Time) (bool, error)
}

type ItemSnapshot struct {
	ID        int64
	Name      string
	OwnerID   int64
	Available bool
	RequestID *int64
}

type BookingSnapshot struct {
	ID          int64
	Start       time.Time
	End         time.Time
	ItemID      int64
	BookerID    int64
	ItemOwnerID int64
	Status      booking.Status
}

// Write repositories. Create/SetStatus are the only booking writers;
// queries never mutate.

type BookingRepository interface {
	Create(ctx context.Context, tx db.DBTX, b *booking.Booking) (int64, error)
	SetStatus(ctx context.Context, tx db.DBTX, id int64, status booking.Status) error
}

type ItemRepository interface {
	Create(ctx context.Context, tx db.DBTX, it *item.Item) (int64, error)
	Update(ctx context.Context, tx db.DBTX, it *item.Item) error
	FindByID(ctx context.Context, id int64) (*item.Item, error)
}

type CommentRepository interface {
	Create(ctx context.Context, tx db.DBTX, c *item.Comment) (int64, error)
}

type UserRepository interface {
	Create(ctx context.Context, tx db.DBTX, u *user.User) (int64, error)
	Update(ctx context.Context, tx db.DBTX, u *user.User) error
	Delete(ctx context.Context, tx db.DBTX, id int64) error
	FindByID(ctx context.Context, id int64) (*user.User, error)
}

type RequestRepository interface {
	Create(ctx context.Context, tx db.DBTX, r *request.ItemRequest) (int64, error)
}
