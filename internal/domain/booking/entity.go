package booking

import (
	"time"

	"shareit/internal/pkg/errs"
)

var (
	ErrInvalidInterval = errs.New("invalid booking interval")
	ErrOwnItemBooking  = errs.New("owner cannot book own item")
	ErrItemUnavailable = errs.New("item is not available for booking")
	ErrAlreadyDecided  = errs.New("booking status can only change from WAITING")
)

// ItemSpec is the slice of the item the booking rules need; the item
// aggregate itself stays outside this package.
type ItemSpec struct {
	ID        int64
	Name      string
	OwnerID   int64
	Available bool
}

type Booking struct {
	id       int64
	start    time.Time
	end      time.Time
	itemID   int64
	bookerID int64
	status   Status
}

// NewBooking validates the creation preconditions the booker controls:
// a well-formed interval, not booking one's own item, and an available
// item. Existence of item and booker is checked by the use case before
// this runs.
func NewBooking(item ItemSpec, bookerID int64, start, end time.Time) (*Booking, error) {
	if start.IsZero() || end.IsZero() || !start.Before(end) {
		return nil, errs.Mark(
			errs.Newf("invalid booking interval: %s - %s", start, end),
			ErrInvalidInterval,
		)
	}
	if item.OwnerID == bookerID {
		return nil, ErrOwnItemBooking
	}
	if !item.Available {
		return nil, ErrItemUnavailable
	}

	return &Booking{
		start:    start,
		end:      end,
		itemID:   item.ID,
		bookerID: bookerID,
		status:   StatusWaiting,
	}, nil
}

func Reconstruct(id int64, start, end time.Time, itemID, bookerID int64, status Status) *Booking {
	return &Booking{
		id:       id,
		start:    start,
		end:      end,
		itemID:   itemID,
		bookerID: bookerID,
		status:   status,
	}
}

// Decide settles a WAITING booking. A settled booking cannot be decided
// again, not even to the same status.
func (b *Booking) Decide(approved bool) error {
	if b.status != StatusWaiting {
		return ErrAlreadyDecided
	}
	if approved {
		b.status = StatusApproved
	} else {
		b.status = StatusRejected
	}
	return nil
}

func (b *Booking) ID() int64        { return b.id }
func (b *Booking) Start() time.Time { return b.start }
func (b *Booking) End() time.Time   { return b.end }
func (b *Booking) ItemID() int64    { return b.itemID }
func (b *Booking) BookerID() int64  { return b.bookerID }
func (b *Booking) Status() Status   { return b.status }
