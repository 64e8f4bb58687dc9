package inmem

import (
	"context"
	"sort"
	"strings"
	"time"

	"shareit/internal/domain/booking"
	"shareit/internal/infra"
	"shareit/internal/usecase/queries"
)

// BookingViews implements the canned booking queries over the map
// store, with the same join and ordering semantics as the SQL version.
type BookingViews struct {
	s *Store
}

func (s *Store) BookingViews() *BookingViews { return &BookingViews{s: s} }

func (v *BookingViews) FindByID(_ context.Context, id int64) (*queries.BookingView, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()

	row, ok := v.s.bookings[id]
	if !ok {
		return nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return v.s.bookingView(row), nil
}

func (v *BookingViews) FindByBooker(ctx context.Context, bookerID int64) ([]*queries.BookingView, error) {
	return v.collect(func(b *bookingRow, _ *itemRow) bool {
		return b.bookerID == bookerID
	}), nil
}

func (v *BookingViews) FindCurrentByBooker(_ context.Context, bookerID int64, now time.Time) ([]*queries.BookingView, error) {
	return v.collect(func(b *bookingRow, _ *itemRow) bool {
		return b.bookerID == bookerID && !b.start.After(now) && !b.end.Before(now)
	}), nil
}

func (v *BookingViews) FindPastByBooker(_ context.Context, bookerID int64, now time.Time) ([]*queries.BookingView, error) {
	return v.collect(func(b *bookingRow, _ *itemRow) bool {
		return b.bookerID == bookerID && b.end.Before(now)
	}), nil
}

func (v *BookingViews) FindFutureByBooker(_ context.Context, bookerID int64, now time.Time) ([]*queries.BookingView, error) {
	return v.collect(func(b *bookingRow, _ *itemRow) bool {
		return b.bookerID == bookerID && b.start.After(now)
	}), nil
}

func (v *BookingViews) FindByBookerAndStatus(_ context.Context, bookerID int64, status booking.Status) ([]*queries.BookingView, error) {
	return v.collect(func(b *bookingRow, _ *itemRow) bool {
		return b.bookerID == bookerID && b.status == status
	}), nil
}

func (v *BookingViews) FindByOwner(_ context.Context, ownerID int64) ([]*queries.BookingView, error) {
	return v.collect(func(_ *bookingRow, it *itemRow) bool {
		return it.ownerID == ownerID
	}), nil
}

func (v *BookingViews) FindCurrentByOwner(_ context.Context, ownerID int64, now time.Time) ([]*queries.BookingView, error) {
	return v.collect(func(b *bookingRow, it *itemRow) bool {
		return it.ownerID == ownerID && !b.start.After(now) && !b.end.Before(now)
	}), nil
}

func (v *BookingViews) FindPastByOwner(_ context.Context, ownerID int64, now time.Time) ([]*queries.BookingView, error) {
	return v.collect(func(b *bookingRow, it *itemRow) bool {
		return it.ownerID == ownerID && b.end.Before(now)
	}), nil
}

func (v *BookingViews) FindFutureByOwner(_ context.Context, ownerID int64, now time.Time) ([]*queries.BookingView, error) {
	return v.collect(func(b *bookingRow, it *itemRow) bool {
		return it.ownerID == ownerID && b.start.After(now)
	}), nil
}

func (v *BookingViews) FindByOwnerAndStatus(_ context.Context, ownerID int64, status booking.Status) ([]*queries.BookingView, error) {
	return v.collect(func(b *bookingRow, it *itemRow) bool {
		return it.ownerID == ownerID && b.status == status
	}), nil
}

func (v *BookingViews) FindLastForItem(_ context.Context, itemID int64, now time.Time) (*queries.BookingWindow, error) {
	return v.window(itemID, func(b *bookingRow) bool {
		return !b.start.After(now)
	}, func(chosen, candidate *bookingRow) bool {
		return candidate.start.After(chosen.start)
	}), nil
}

func (v *BookingViews) FindNextForItem(_ context.Context, itemID int64, now time.Time) (*queries.BookingWindow, error) {
	return v.window(itemID, func(b *bookingRow) bool {
		return b.start.After(now)
	}, func(chosen, candidate *bookingRow) bool {
		return candidate.start.Before(chosen.start)
	}), nil
}

func (v *BookingViews) collect(match func(*bookingRow, *itemRow) bool) []*queries.BookingView {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()

	result := make([]*queries.BookingView, 0)
	for _, b := range v.s.bookings {
		it, ok := v.s.items[b.itemID]
		if !ok || !match(b, it) {
			continue
		}
		result = append(result, v.s.bookingView(b))
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Start.After(result[j].Start)
	})
	return result
}

func (v *BookingViews) window(itemID int64, eligible func(*bookingRow) bool, better func(chosen, candidate *bookingRow) bool) *queries.BookingWindow {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()

	var chosen *bookingRow
	for _, b := range v.s.bookings {
		if b.itemID != itemID || b.status != booking.StatusApproved || !eligible(b) {
			continue
		}
		if chosen == nil || better(chosen, b) {
			chosen = b
		}
	}
	if chosen == nil {
		return nil
	}
	return &queries.BookingWindow{Start: chosen.start, End: chosen.end}
}

// bookingView must be called with the store lock held.
func (s *Store) bookingView(b *bookingRow) *queries.BookingView {
	view := &queries.BookingView{
		ID:     b.id,
		Start:  b.start,
		End:    b.end,
		Status: b.status.String(),
		Booker: queries.BookerRef{ID: b.bookerID},
		Item:   queries.ItemRef{ID: b.itemID},
	}
	if it, ok := s.items[b.itemID]; ok {
		view.Item.Name = it.name
		view.ItemOwnerID = it.ownerID
	}
	return view
}

type ItemViews struct {
	s *Store
}

func (s *Store) ItemViews() *ItemViews { return &ItemViews{s: s} }

func (v *ItemViews) FindByID(_ context.Context, id int64) (*queries.ItemView, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()

	row, ok := v.s.items[id]
	if !ok {
		return nil, infra.WrapRepoErr("item not found", nil, infra.KindNotFound)
	}
	return itemView(row), nil
}

func (v *ItemViews) FindByOwner(_ context.Context, ownerID int64) ([]*queries.ItemView, error) {
	return v.collect(func(it *itemRow) bool {
		return it.ownerID == ownerID
	}), nil
}

func (v *ItemViews) SearchAvailable(_ context.Context, text string) ([]*queries.ItemView, error) {
	needle := strings.ToLower(text)
	return v.collect(func(it *itemRow) bool {
		return it.available &&
			(strings.Contains(strings.ToLower(it.name), needle) ||
				strings.Contains(strings.ToLower(it.description), needle))
	}), nil
}

func (v *ItemViews) collect(match func(*itemRow) bool) []*queries.ItemView {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()

	result := make([]*queries.ItemView, 0)
	for _, it := range v.s.items {
		if match(it) {
			result = append(result, itemView(it))
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

func itemView(it *itemRow) *queries.ItemView {
	return &queries.ItemView{
		ID:          it.id,
		Name:        it.name,
		Description: it.description,
		Available:   it.available,
		OwnerID:     it.ownerID,
		RequestID:   it.requestID,
	}
}

type CommentViews struct {
	s *Store
}

func (s *Store) CommentViews() *CommentViews { return &CommentViews{s: s} }

func (v *CommentViews) FindByItem(ctx context.Context, itemID int64) ([]*queries.CommentView, error) {
	byItem, err := v.FindByItems(ctx, []int64{itemID})
	if err != nil {
		return nil, err
	}
	comments := byItem[itemID]
	if comments == nil {
		comments = []*queries.CommentView{}
	}
	return comments, nil
}

func (v *CommentViews) FindByItems(_ context.Context, itemIDs []int64) (map[int64][]*queries.CommentView, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()

	wanted := make(map[int64]bool, len(itemIDs))
	for _, id := range itemIDs {
		wanted[id] = true
	}

	result := make(map[int64][]*queries.CommentView)
	for _, c := range v.s.comments {
		if !wanted[c.itemID] {
			continue
		}
		view := &queries.CommentView{
			ID:      c.id,
			Text:    c.text,
			Created: c.created,
		}
		if author, ok := v.s.users[c.authorID]; ok {
			view.AuthorName = author.name
		}
		result[c.itemID] = append(result[c.itemID], view)
	}
	for _, views := range result {
		sort.Slice(views, func(i, j int) bool {
			return views[i].Created.After(views[j].Created)
		})
	}
	return result, nil
}

type UserViews struct {
	s *Store
}

func (s *Store) UserViews() *UserViews { return &UserViews{s: s} }

func (v *UserViews) Exists(ctx context.Context, id int64) (bool, error) {
	return v.s.UserExists(ctx, id)
}

func (v *UserViews) FindByID(_ context.Context, id int64) (*queries.UserView, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()

	row, ok := v.s.users[id]
	if !ok {
		return nil, infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	return &queries.UserView{ID: row.id, Name: row.name, Email: row.email}, nil
}

func (v *UserViews) FindAll(_ context.Context) ([]*queries.UserView, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()

	result := make([]*queries.UserView, 0, len(v.s.users))
	for _, row := range v.s.users {
		result = append(result, &queries.UserView{ID: row.id, Name: row.name, Email: row.email})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

type RequestViews struct {
	s *Store
}

func (s *Store) RequestViews() *RequestViews { return &RequestViews{s: s} }

func (v *RequestViews) FindByID(_ context.Context, id int64) (*queries.RequestView, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()

	row, ok := v.s.requests[id]
	if !ok {
		return nil, infra.WrapRepoErr("item request not found", nil, infra.KindNotFound)
	}
	return requestView(row), nil
}

func (v *RequestViews) FindByRequestor(_ context.Context, requestorID int64) ([]*queries.RequestView, error) {
	return v.collect(func(r *requestRow) bool {
		return r.requestorID == requestorID
	}), nil
}

func (v *RequestViews) FindAllExcept(_ context.Context, userID int64) ([]*queries.RequestView, error) {
	return v.collect(func(r *requestRow) bool {
		return r.requestorID != userID
	}), nil
}

func (v *RequestViews) FindAnswers(_ context.Context, requestIDs []int64) (map[int64][]*queries.RequestAnswerView, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()

	wanted := make(map[int64]bool, len(requestIDs))
	for _, id := range requestIDs {
		wanted[id] = true
	}

	result := make(map[int64][]*queries.RequestAnswerView)
	for _, it := range v.s.items {
		if it.requestID == nil || !wanted[*it.requestID] {
			continue
		}
		result[*it.requestID] = append(result[*it.requestID], &queries.RequestAnswerView{
			ID:      it.id,
			Name:    it.name,
			OwnerID: it.ownerID,
		})
	}
	for _, views := range result {
		sort.Slice(views, func(i, j int) bool { return views[i].ID < views[j].ID })
	}
	return result, nil
}

func (v *RequestViews) collect(match func(*requestRow) bool) []*queries.RequestView {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()

	result := make([]*queries.RequestView, 0)
	for _, r := range v.s.requests {
		if match(r) {
			result = append(result, requestView(r))
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Created.After(result[j].Created)
	})
	return result
}

func requestView(r *requestRow) *queries.RequestView {
	return &queries.RequestView{
		ID:          r.id,
		Description: r.description,
		Created:     r.created,
	}
}
