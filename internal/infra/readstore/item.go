package readstore

import (
	"context"
	"errors"

	"github.com/doug-martin/goqu/v9"
	"github.com/jackc/pgx/v5"

	"shareit/internal/infra"
	"shareit/internal/infra/db"
	"shareit/internal/usecase/queries"
)

type ItemReadStore struct {
	db db.DBTX
}

func NewItemReadStore(dbtx db.DBTX) *ItemReadStore {
	return &ItemReadStore{db: dbtx}
}

func itemSelect() *goqu.SelectDataset {
	return dialect.From("items").
		Select(
			goqu.C("id"),
			goqu.C("name"),
			goqu.C("description"),
			goqu.C("available"),
			goqu.C("owner_id"),
			goqu.C("request_id"),
		)
}

func (r *ItemReadStore) FindByID(ctx context.Context, id int64) (*queries.ItemView, error) {
	sqlStr, args, err := itemSelect().
		Where(goqu.C("id").Eq(id)).
		Prepared(true).ToSQL()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build item query", err)
	}

	view, err := scanItemView(r.db.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("item not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find item by ID", err)
	}
	return view, nil
}

func (r *ItemReadStore) FindByOwner(ctx context.Context, ownerID int64) ([]*queries.ItemView, error) {
	return r.list(ctx, itemSelect().
		Where(goqu.C("owner_id").Eq(ownerID)).
		Order(goqu.C("id").Asc()))
}

// SearchAvailable matches the text against name or description, case
// insensitively, over available items only.
func (r *ItemReadStore) SearchAvailable(ctx context.Context, text string) ([]*queries.ItemView, error) {
	pattern := "%" + text + "%"
	return r.list(ctx, itemSelect().
		Where(
			goqu.C("available").IsTrue(),
			goqu.Or(
				goqu.C("name").ILike(pattern),
				goqu.C("description").ILike(pattern),
			),
		).
		Order(goqu.C("id").Asc()))
}

func (r *ItemReadStore) list(ctx context.Context, ds *goqu.SelectDataset) ([]*queries.ItemView, error) {
	sqlStr, args, err := ds.Prepared(true).ToSQL()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build item list query", err)
	}

	rows, err := r.db.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list items", err)
	}
	defer rows.Close()

	result := make([]*queries.ItemView, 0)
	for rows.Next() {
		view, scanErr := scanItemView(rows)
		if scanErr != nil {
			return nil, infra.WrapRepoErr("failed to scan item row", scanErr)
		}
		result = append(result, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate item rows", err)
	}
	return result, nil
}

func scanItemView(row pgx.Row) (*queries.ItemView, error) {
	var view queries.ItemView
	err := row.Scan(
		&view.ID,
		&view.Name,
		&view.Description,
		&view.Available,
		&view.OwnerID,
		&view.RequestID,
	)
	if err != nil {
		return nil, err
	}
	return &view, nil
}
