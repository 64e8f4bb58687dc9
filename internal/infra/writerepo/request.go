package writerepo

import (
	"context"

	"github.com/doug-martin/goqu/v9"

	"shareit/internal/domain/request"
	"shareit/internal/infra"
	"shareit/internal/infra/db"
)

type RequestRepository struct{}

func NewRequestRepository() *RequestRepository {
	return &RequestRepository{}
}

func (r *RequestRepository) Create(ctx context.Context, tx db.DBTX, req *request.ItemRequest) (int64, error) {
	sqlStr, args, err := dialect.Insert("requests").
		Rows(goqu.Record{
			"description":  req.Description(),
			"requestor_id": req.RequestorID(),
			"created":      req.Created(),
		}).
		Returning("id").
		Prepared(true).ToSQL()
	if err != nil {
		return 0, infra.WrapRepoErr("failed to build request insert", err)
	}

	var id int64
	if err := tx.QueryRow(ctx, sqlStr, args...).Scan(&id); err != nil {
		return 0, wrapWriteErr("failed to create request", err)
	}
	return id, nil
}
