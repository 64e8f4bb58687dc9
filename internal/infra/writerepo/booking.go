package writerepo

import (
	"context"

	"github.com/doug-martin/goqu/v9"

	"shareit/internal/domain/booking"
	"shareit/internal/infra"
	"shareit/internal/infra/db"
)

type BookingRepository struct{}

func NewBookingRepository() *BookingRepository {
	return &BookingRepository{}
}

func (r *BookingRepository) Create(ctx context.Context, tx db.DBTX, b *booking.Booking) (int64, error) {
	sqlStr, args, err := dialect.Insert("bookings").
		Rows(goqu.Record{
			"start_date": b.Start(),
			"end_date":   b.End(),
			"item_id":    b.ItemID(),
			"booker_id":  b.BookerID(),
			"status":     b.Status().String(),
		}).
		Returning("id").
		Prepared(true).ToSQL()
	if err != nil {
		return 0, infra.WrapRepoErr("failed to build booking insert", err)
	}

	var id int64
	if err := tx.QueryRow(ctx, sqlStr, args...).Scan(&id); err != nil {
		return 0, wrapWriteErr("failed to create booking", err)
	}
	return id, nil
}

func (r *BookingRepository) SetStatus(ctx context.Context, tx db.DBTX, id int64, status booking.Status) error {
	sqlStr, args, err := dialect.Update("bookings").
		Set(goqu.Record{"status": status.String()}).
		Where(goqu.C("id").Eq(id)).
		Prepared(true).ToSQL()
	if err != nil {
		return infra.WrapRepoErr("failed to build booking status update", err)
	}

	tag, err := tx.Exec(ctx, sqlStr, args...)
	if err != nil {
		return wrapWriteErr("failed to update booking status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}
