package inmem

import (
	"context"

	"shareit/internal/domain/booking"
	"shareit/internal/domain/item"
	"shareit/internal/domain/request"
	"shareit/internal/domain/user"
	"shareit/internal/infra"
	"shareit/internal/infra/db"
)

type BookingRepo struct {
	s *Store
}

func (s *Store) BookingRepo() *BookingRepo { return &BookingRepo{s: s} }

func (r *BookingRepo) Create(_ context.Context, _ db.DBTX, b *booking.Booking) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	id := r.s.allocID()
	r.s.bookings[id] = &bookingRow{
		id:       id,
		start:    b.Start(),
		end:      b.End(),
		itemID:   b.ItemID(),
		bookerID: b.BookerID(),
		status:   b.Status(),
	}
	return id, nil
}

func (r *BookingRepo) SetStatus(_ context.Context, _ db.DBTX, id int64, status booking.Status) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	row, ok := r.s.bookings[id]
	if !ok {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	row.status = status
	return nil
}

type ItemRepo struct {
	s *Store
}

func (s *Store) ItemRepo() *ItemRepo { return &ItemRepo{s: s} }

func (r *ItemRepo) Create(_ context.Context, _ db.DBTX, it *item.Item) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	id := r.s.allocID()
	r.s.items[id] = &itemRow{
		id:          id,
		name:        it.Name(),
		description: it.Description(),
		available:   it.Available(),
		ownerID:     it.OwnerID(),
		requestID:   it.RequestID(),
	}
	return id, nil
}

func (r *ItemRepo) Update(_ context.Context, _ db.DBTX, it *item.Item) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	row, ok := r.s.items[it.ID()]
	if !ok {
		return infra.WrapRepoErr("item not found", nil, infra.KindNotFound)
	}
	row.name = it.Name()
	row.description = it.Description()
	row.available = it.Available()
	return nil
}

func (r *ItemRepo) FindByID(_ context.Context, id int64) (*item.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	row, ok := r.s.items[id]
	if !ok {
		return nil, infra.WrapRepoErr("item not found", nil, infra.KindNotFound)
	}
	return item.ReconstructItem(row.id, row.name, row.description, row.available, row.ownerID, row.requestID), nil
}

type CommentRepo struct {
	s *Store
}

func (s *Store) CommentRepo() *CommentRepo { return &CommentRepo{s: s} }

func (r *CommentRepo) Create(_ context.Context, _ db.DBTX, c *item.Comment) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	id := r.s.allocID()
	r.s.comments[id] = &commentRow{
		id:       id,
		text:     c.Text(),
		itemID:   c.ItemID(),
		authorID: c.AuthorID(),
		created:  c.Created(),
	}
	return id, nil
}

type UserRepo struct {
	s *Store
}

func (s *Store) UserRepo() *UserRepo { return &UserRepo{s: s} }

func (r *UserRepo) Create(_ context.Context, _ db.DBTX, u *user.User) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.emailTaken(u.Email().String(), 0) {
		return 0, infra.WrapRepoErr("email already in use", nil, infra.KindDuplicateKey)
	}

	id := r.s.allocID()
	r.s.users[id] = &userRow{id: id, name: u.Name(), email: u.Email().String()}
	return id, nil
}

func (r *UserRepo) Update(_ context.Context, _ db.DBTX, u *user.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	row, ok := r.s.users[u.ID()]
	if !ok {
		return infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	if r.s.emailTaken(u.Email().String(), u.ID()) {
		return infra.WrapRepoErr("email already in use", nil, infra.KindDuplicateKey)
	}
	row.name = u.Name()
	row.email = u.Email().String()
	return nil
}

func (r *UserRepo) Delete(_ context.Context, _ db.DBTX, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[id]; !ok {
		return infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	delete(r.s.users, id)
	return nil
}

func (r *UserRepo) FindByID(_ context.Context, id int64) (*user.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	row, ok := r.s.users[id]
	if !ok {
		return nil, infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	email, err := user.NewEmail(row.email)
	if err != nil {
		return nil, infra.WrapRepoErr("stored email is invalid", err)
	}
	return user.ReconstructUser(row.id, row.name, email), nil
}

// emailTaken must be called with the store lock held.
func (s *Store) emailTaken(email string, excludeID int64) bool {
	for _, row := range s.users {
		if row.id != excludeID && row.email == email {
			return true
		}
	}
	return false
}

type RequestRepo struct {
	s *Store
}

func (s *Store) RequestRepo() *RequestRepo { return &RequestRepo{s: s} }

func (r *RequestRepo) Create(_ context.Context, _ db.DBTX, req *request.ItemRequest) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	id := r.s.allocID()
	r.s.requests[id] = &requestRow{
		id:          id,
		description: req.Description(),
		requestorID: req.RequestorID(),
		created:     req.Created(),
	}
	return id, nil
}
