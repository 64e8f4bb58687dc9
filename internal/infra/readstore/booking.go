package readstore

import (
	"context"
	"errors"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/jackc/pgx/v5"

	"shareit/internal/domain/booking"
	"shareit/internal/infra"
	"shareit/internal/infra/db"
	"shareit/internal/usecase/queries"
)

// BookingReadStore serves the ten canned bucket queries plus the
// by-id and availability-window lookups. Every list query joins the
// item eagerly so callers never chase item names per row.
type BookingReadStore struct {
	db db.DBTX
}

func NewBookingReadStore(dbtx db.DBTX) *BookingReadStore {
	return &BookingReadStore{db: dbtx}
}

func (r *BookingReadStore) baseSelect() *goqu.SelectDataset {
	return dialect.From(goqu.T("bookings").As("b")).
		Join(goqu.T("items").As("i"), goqu.On(goqu.I("b.item_id").Eq(goqu.I("i.id")))).
		Select(
			goqu.I("b.id"),
			goqu.I("b.start_date"),
			goqu.I("b.end_date"),
			goqu.I("b.status"),
			goqu.I("b.booker_id"),
			goqu.I("i.id"),
			goqu.I("i.name"),
			goqu.I("i.owner_id"),
		)
}

func (r *BookingReadStore) FindByID(ctx context.Context, id int64) (*queries.BookingView, error) {
	sqlStr, args, err := r.baseSelect().
		Where(goqu.I("b.id").Eq(id)).
		Prepared(true).ToSQL()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build booking query", err)
	}

	view, err := scanBookingView(r.db.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}
	return view, nil
}

// Booker-scoped buckets

func (r *BookingReadStore) FindByBooker(ctx context.Context, bookerID int64) ([]*queries.BookingView, error) {
	return r.list(ctx, r.bookerScoped(bookerID))
}

func (r *BookingReadStore) FindCurrentByBooker(ctx context.Context, bookerID int64, now time.Time) ([]*queries.BookingView, error) {
	return r.list(ctx, r.bookerScoped(bookerID).
		Where(goqu.I("b.start_date").Lte(now), goqu.I("b.end_date").Gte(now)))
}

func (r *BookingReadStore) FindPastByBooker(ctx context.Context, bookerID int64, now time.Time) ([]*queries.BookingView, error) {
	return r.list(ctx, r.bookerScoped(bookerID).
		Where(goqu.I("b.end_date").Lt(now)))
}

func (r *BookingReadStore) FindFutureByBooker(ctx context.Context, bookerID int64, now time.Time) ([]*queries.BookingView, error) {
	return r.list(ctx, r.bookerScoped(bookerID).
		Where(goqu.I("b.start_date").Gt(now)))
}

func (r *BookingReadStore) FindByBookerAndStatus(ctx context.Context, bookerID int64, status booking.Status) ([]*queries.BookingView, error) {
	return r.list(ctx, r.bookerScoped(bookerID).
		Where(goqu.I("b.status").Eq(status.String())))
}

// Owner-scoped buckets, joined through the item

func (r *BookingReadStore) FindByOwner(ctx context.Context, ownerID int64) ([]*queries.BookingView, error) {
	return r.list(ctx, r.ownerScoped(ownerID))
}

func (r *BookingReadStore) FindCurrentByOwner(ctx context.Context, ownerID int64, now time.Time) ([]*queries.BookingView, error) {
	return r.list(ctx, r.ownerScoped(ownerID).
		Where(goqu.I("b.start_date").Lte(now), goqu.I("b.end_date").Gte(now)))
}

func (r *BookingReadStore) FindPastByOwner(ctx context.Context, ownerID int64, now time.Time) ([]*queries.BookingView, error) {
	return r.list(ctx, r.ownerScoped(ownerID).
		Where(goqu.I("b.end_date").Lt(now)))
}

func (r *BookingReadStore) FindFutureByOwner(ctx context.Context, ownerID int64, now time.Time) ([]*queries.BookingView, error) {
	return r.list(ctx, r.ownerScoped(ownerID).
		Where(goqu.I("b.start_date").Gt(now)))
}

func (r *BookingReadStore) FindByOwnerAndStatus(ctx context.Context, ownerID int64, status booking.Status) ([]*queries.BookingView, error) {
	return r.list(ctx, r.ownerScoped(ownerID).
		Where(goqu.I("b.status").Eq(status.String())))
}

// Availability windows for the item aggregation. A missing window is
// (nil, nil), not an error.

func (r *BookingReadStore) FindLastForItem(ctx context.Context, itemID int64, now time.Time) (*queries.BookingWindow, error) {
	return r.findWindow(ctx, dialect.From("bookings").
		Select(goqu.C("start_date"), goqu.C("end_date")).
		Where(
			goqu.C("item_id").Eq(itemID),
			goqu.C("status").Eq(booking.StatusApproved.String()),
			goqu.C("start_date").Lte(now),
		).
		Order(goqu.C("start_date").Desc()).
		Limit(1))
}

func (r *BookingReadStore) FindNextForItem(ctx context.Context, itemID int64, now time.Time) (*queries.BookingWindow, error) {
	return r.findWindow(ctx, dialect.From("bookings").
		Select(goqu.C("start_date"), goqu.C("end_date")).
		Where(
			goqu.C("item_id").Eq(itemID),
			goqu.C("status").Eq(booking.StatusApproved.String()),
			goqu.C("start_date").Gt(now),
		).
		Order(goqu.C("start_date").Asc()).
		Limit(1))
}

func (r *BookingReadStore) bookerScoped(bookerID int64) *goqu.SelectDataset {
	return r.baseSelect().
		Where(goqu.I("b.booker_id").Eq(bookerID)).
		Order(goqu.I("b.start_date").Desc())
}

func (r *BookingReadStore) ownerScoped(ownerID int64) *goqu.SelectDataset {
	return r.baseSelect().
		Where(goqu.I("i.owner_id").Eq(ownerID)).
		Order(goqu.I("b.start_date").Desc())
}

func (r *BookingReadStore) list(ctx context.Context, ds *goqu.SelectDataset) ([]*queries.BookingView, error) {
	sqlStr, args, err := ds.Prepared(true).ToSQL()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build booking list query", err)
	}

	rows, err := r.db.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings", err)
	}
	defer rows.Close()

	result := make([]*queries.BookingView, 0)
	for rows.Next() {
		view, scanErr := scanBookingView(rows)
		if scanErr != nil {
			return nil, infra.WrapRepoErr("failed to scan booking row", scanErr)
		}
		result = append(result, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate booking rows", err)
	}
	return result, nil
}

func (r *BookingReadStore) findWindow(ctx context.Context, ds *goqu.SelectDataset) (*queries.BookingWindow, error) {
	sqlStr, args, err := ds.Prepared(true).ToSQL()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build booking window query", err)
	}

	var window queries.BookingWindow
	err = r.db.QueryRow(ctx, sqlStr, args...).Scan(&window.Start, &window.End)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr("failed to find booking window", err)
	}
	return &window, nil
}

func scanBookingView(row pgx.Row) (*queries.BookingView, error) {
	var view queries.BookingView
	err := row.Scan(
		&view.ID,
		&view.Start,
		&view.End,
		&view.Status,
		&view.Booker.ID,
		&view.Item.ID,
		&view.Item.Name,
		&view.ItemOwnerID,
	)
	if err != nil {
		return nil, err
	}
	return &view, nil
}
