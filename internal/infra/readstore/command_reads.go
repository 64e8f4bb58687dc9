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
	"shareit/internal/usecase/commands"
)

// CommandReadStore serves the precondition lookups of the command side.
// It reads through the pool, not the transaction: preconditions are
// checked before the unit of work opens.
type CommandReadStore struct {
	db db.DBTX
}

func NewCommandReadStore(dbtx db.DBTX) *CommandReadStore {
	return &CommandReadStore{db: dbtx}
}

func (r *CommandReadStore) ItemByID(ctx context.Context, id int64) (*commands.ItemSnapshot, error) {
	sqlStr, args, err := dialect.From("items").
		Select(goqu.C("id"), goqu.C("name"), goqu.C("owner_id"), goqu.C("available"), goqu.C("request_id")).
		Where(goqu.C("id").Eq(id)).
		Prepared(true).ToSQL()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build item snapshot query", err)
	}

	var snap commands.ItemSnapshot
	err = r.db.QueryRow(ctx, sqlStr, args...).
		Scan(&snap.ID, &snap.Name, &snap.OwnerID, &snap.Available, &snap.RequestID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("item not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to load item snapshot", err)
	}
	return &snap, nil
}

func (r *CommandReadStore) UserExists(ctx context.Context, id int64) (bool, error) {
	return r.exists(ctx, "users", goqu.C("id").Eq(id), "failed to check user existence")
}

func (r *CommandReadStore) RequestExists(ctx context.Context, id int64) (bool, error) {
	return r.exists(ctx, "requests", goqu.C("id").Eq(id), "failed to check request existence")
}

func (r *CommandReadStore) BookingByID(ctx context.Context, id int64) (*commands.BookingSnapshot, error) {
	sqlStr, args, err := dialect.From(goqu.T("bookings").As("b")).
		Join(goqu.T("items").As("i"), goqu.On(goqu.I("b.item_id").Eq(goqu.I("i.id")))).
		Select(
			goqu.I("b.id"),
			goqu.I("b.start_date"),
			goqu.I("b.end_date"),
			goqu.I("b.item_id"),
			goqu.I("b.booker_id"),
			goqu.I("i.owner_id"),
			goqu.I("b.status"),
		).
		Where(goqu.I("b.id").Eq(id)).
		Prepared(true).ToSQL()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build booking snapshot query", err)
	}

	var (
		snap   commands.BookingSnapshot
		status string
	)
	err = r.db.QueryRow(ctx, sqlStr, args...).
		Scan(&snap.ID, &snap.Start, &snap.End, &snap.ItemID, &snap.BookerID, &snap.ItemOwnerID, &status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to load booking snapshot", err)
	}
	snap.Status = booking.Status(status)
	return &snap, nil
}

func (r *CommandReadStore) HasFinishedBooking(ctx context.Context, bookerID, itemID int64, before time.Time) (bool, error) {
	return r.exists(ctx, "bookings", goqu.And(
		goqu.C("booker_id").Eq(bookerID),
		goqu.C("item_id").Eq(itemID),
		goqu.C("status").Eq(booking.StatusApproved.String()),
		goqu.C("end_date").Lt(before),
	), "failed to check finished bookings")
}

func (r *CommandReadStore) exists(ctx context.Context, table string, cond goqu.Expression, failMsg string) (bool, error) {
	sqlStr, args, err := dialect.From(table).
		Select(goqu.COUNT("*")).
		Where(cond).
		Prepared(true).ToSQL()
	if err != nil {
		return false, infra.WrapRepoErr(failMsg, err)
	}

	var count int64
	if err := r.db.QueryRow(ctx, sqlStr, args...).Scan(&count); err != nil {
		return false, infra.WrapRepoErr(failMsg, err)
	}
	return count > 0, nil
}
