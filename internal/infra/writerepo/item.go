package writerepo

import (
	"context"
	"errors"

	"github.com/doug-martin/goqu/v9"
	"github.com/jackc/pgx/v5"

	"shareit/internal/domain/item"
	"shareit/internal/infra"
	"shareit/internal/infra/db"
)

type ItemRepository struct {
	db db.DBTX
}

// NewItemRepository takes the pool for the read-for-update path; writes
// still go through the transaction handle passed per call.
func NewItemRepository(dbtx db.DBTX) *ItemRepository {
	return &ItemRepository{db: dbtx}
}

func (r *ItemRepository) Create(ctx context.Context, tx db.DBTX, it *item.Item) (int64, error) {
	sqlStr, args, err := dialect.Insert("items").
		Rows(goqu.Record{
			"name":        it.Name(),
			"description": it.Description(),
			"available":   it.Available(),
			"owner_id":    it.OwnerID(),
			"request_id":  it.RequestID(),
		}).
		Returning("id").
		Prepared(true).ToSQL()
	if err != nil {
		return 0, infra.WrapRepoErr("failed to build item insert", err)
	}

	var id int64
	if err := tx.QueryRow(ctx, sqlStr, args...).Scan(&id); err != nil {
		return 0, wrapWriteErr("failed to create item", err)
	}
	return id, nil
}

func (r *ItemRepository) Update(ctx context.Context, tx db.DBTX, it *item.Item) error {
	sqlStr, args, err := dialect.Update("items").
		Set(goqu.Record{
			"name":        it.Name(),
			"description": it.Description(),
			"available":   it.Available(),
		}).
		Where(goqu.C("id").Eq(it.ID())).
		Prepared(true).ToSQL()
	if err != nil {
		return infra.WrapRepoErr("failed to build item update", err)
	}

	tag, err := tx.Exec(ctx, sqlStr, args...)
	if err != nil {
		return wrapWriteErr("failed to update item", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("item not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *ItemRepository) FindByID(ctx context.Context, id int64) (*item.Item, error) {
	sqlStr, args, err := dialect.From("items").
		Select(
			goqu.C("id"),
			goqu.C("name"),
			goqu.C("description"),
			goqu.C("available"),
			goqu.C("owner_id"),
			goqu.C("request_id"),
		).
		Where(goqu.C("id").Eq(id)).
		Prepared(true).ToSQL()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build item query", err)
	}

	var (
		itemID      int64
		name        string
		description string
		available   bool
		ownerID     int64
		requestID   *int64
	)
	err = r.db.QueryRow(ctx, sqlStr, args...).
		Scan(&itemID, &name, &description, &available, &ownerID, &requestID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("item not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find item by ID", err)
	}
	return item.ReconstructItem(itemID, name, description, available, ownerID, requestID), nil
}
