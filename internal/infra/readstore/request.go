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

type RequestReadStore struct {
	db db.DBTX
}

func NewRequestReadStore(dbtx db.DBTX) *RequestReadStore {
	return &RequestReadStore{db: dbtx}
}

func requestSelect() *goqu.SelectDataset {
	return dialect.From("requests").
		Select(goqu.C("id"), goqu.C("description"), goqu.C("created"))
}

func (r *RequestReadStore) FindByID(ctx context.Context, id int64) (*queries.RequestView, error) {
	sqlStr, args, err := requestSelect().
		Where(goqu.C("id").Eq(id)).
		Prepared(true).ToSQL()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build request query", err)
	}

	var view queries.RequestView
	err = r.db.QueryRow(ctx, sqlStr, args...).Scan(&view.ID, &view.Description, &view.Created)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("item request not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find request by ID", err)
	}
	return &view, nil
}

func (r *RequestReadStore) FindByRequestor(ctx context.Context, requestorID int64) ([]*queries.RequestView, error) {
	return r.list(ctx, requestSelect().
		Where(goqu.C("requestor_id").Eq(requestorID)).
		Order(goqu.C("created").Desc()))
}

func (r *RequestReadStore) FindAllExcept(ctx context.Context, userID int64) ([]*queries.RequestView, error) {
	return r.list(ctx, requestSelect().
		Where(goqu.C("requestor_id").Neq(userID)).
		Order(goqu.C("created").Desc()))
}

// FindAnswers resolves, for a batch of requests, the items that were
// created in answer to each.
func (r *RequestReadStore) FindAnswers(ctx context.Context, requestIDs []int64) (map[int64][]*queries.RequestAnswerView, error) {
	if len(requestIDs) == 0 {
		return map[int64][]*queries.RequestAnswerView{}, nil
	}

	sqlStr, args, err := dialect.From("items").
		Select(goqu.C("id"), goqu.C("name"), goqu.C("owner_id"), goqu.C("request_id")).
		Where(goqu.C("request_id").In(requestIDs)).
		Order(goqu.C("id").Asc()).
		Prepared(true).ToSQL()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build request answers query", err)
	}

	rows, err := r.db.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list request answers", err)
	}
	defer rows.Close()

	result := make(map[int64][]*queries.RequestAnswerView)
	for rows.Next() {
		var (
			view      queries.RequestAnswerView
			requestID int64
		)
		if err := rows.Scan(&view.ID, &view.Name, &view.OwnerID, &requestID); err != nil {
			return nil, infra.WrapRepoErr("failed to scan request answer row", err)
		}
		result[requestID] = append(result[requestID], &view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate request answer rows", err)
	}
	return result, nil
}

func (r *RequestReadStore) list(ctx context.Context, ds *goqu.SelectDataset) ([]*queries.RequestView, error) {
	sqlStr, args, err := ds.Prepared(true).ToSQL()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build request list query", err)
	}

	rows, err := r.db.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list requests", err)
	}
	defer rows.Close()

	result := make([]*queries.RequestView, 0)
	for rows.Next() {
		var view queries.RequestView
		if err := rows.Scan(&view.ID, &view.Description, &view.Created); err != nil {
			return nil, infra.WrapRepoErr("failed to scan request row", err)
		}
		result = append(result, &view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate request rows", err)
	}
	return result, nil
}
