package queries

import (
	"context"
	"strings"
	"time"

	"shareit/internal/infra"
	"shareit/internal/pkg/clock"
	"shareit/internal/pkg/errs"
)

var ErrItemNotFound = errs.New("item not found")

type ItemQueries interface {
	Get(ctx context.Context, itemID int64) (*ItemWithBookingsView, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]*ItemWithBookingsView, error)
	Search(ctx context.Context, text string) ([]*ItemView, error)
}

type ItemViewRepo interface {
	FindByID(ctx context.Context, id int64) (*ItemView, error)
	FindByOwner(ctx context.Context, ownerID int64) ([]*ItemView, error)
	SearchAvailable(ctx context.Context, text string) ([]*ItemView, error)
}

type CommentViewRepo interface {
	FindByItem(ctx context.Context, itemID int64) ([]*CommentView, error)
	// FindByItems fetches comments for many items in one query, newest
	// first, grouped by item id.
	FindByItems(ctx context.Context, itemIDs []int64) (map[int64][]*CommentView, error)
}

// BookingWindowRepo answers the two availability lookups per item: the
// most recent approved booking already started, and the nearest approved
// one still ahead. Both return nil when no such booking exists.
type BookingWindowRepo interface {
	FindLastForItem(ctx context.Context, itemID int64, now time.Time) (*BookingWindow, error)
	FindNextForItem(ctx context.Context, itemID int64, now time.Time) (*BookingWindow, error)
}

type itemQueriesImpl struct {
	items    ItemViewRepo
	comments CommentViewRepo
	windows  BookingWindowRepo
	users    UserExistenceRepo
	clock    clock.Clock
}

func NewItemQueries(items ItemViewRepo, comments CommentViewRepo, windows BookingWindowRepo, users UserExistenceRepo, clk clock.Clock) ItemQueries {
	return &itemQueriesImpl{
		items:    items,
		comments: comments,
		windows:  windows,
		users:    users,
		clock:    clk,
	}
}

func (q *itemQueriesImpl) Get(ctx context.Context, itemID int64) (*ItemWithBookingsView, error) {
	view, err := q.items.FindByID(ctx, itemID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrItemNotFound)
		}
		return nil, err
	}

	comments, err := q.comments.FindByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	return &ItemWithBookingsView{
		ItemView: *view,
		Comments: comments,
	}, nil
}

// ListByOwner is the availability aggregation for an owner's inventory:
// per item the last and next approved booking window plus its comments.
// Two window lookups per item and one batched comment query keep the
// store round trips at 2n+2.
func (q *itemQueriesImpl) ListByOwner(ctx context.Context, ownerID int64) ([]*ItemWithBookingsView, error) {
	exists, err := q.users.Exists(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, errs.Mark(errs.Newf("user %d not found", ownerID), ErrUserNotFound)
	}

	items, err := q.items.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return []*ItemWithBookingsView{}, nil
	}

	itemIDs := make([]int64, len(items))
	for i, it := range items {
		itemIDs[i] = it.ID
	}
	commentsByItem, err := q.comments.FindByItems(ctx, itemIDs)
	if err != nil {
		return nil, err
	}

	now := q.clock.Now()
	result := make([]*ItemWithBookingsView, len(items))
	for i, it := range items {
		last, err := q.windows.FindLastForItem(ctx, it.ID, now)
		if err != nil {
			return nil, err
		}
		next, err := q.windows.FindNextForItem(ctx, it.ID, now)
		if err != nil {
			return nil, err
		}

		comments := commentsByItem[it.ID]
		if comments == nil {
			comments = []*CommentView{}
		}
		result[i] = &ItemWithBookingsView{
			ItemView:    *it,
			LastBooking: last,
			NextBooking: next,
			Comments:    comments,
		}
	}
	return result, nil
}

func (q *itemQueriesImpl) Search(ctx context.Context, text string) ([]*ItemView, error) {
	if strings.TrimSpace(text) == "" {
		return []*ItemView{}, nil
	}
	return q.items.SearchAvailable(ctx, text)
}
