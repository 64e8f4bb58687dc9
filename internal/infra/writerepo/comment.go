package writerepo

import (
	"context"

	"github.com/doug-martin/goqu/v9"

	"shareit/internal/domain/item"
	"shareit/internal/infra"
	"shareit/internal/infra/db"
)

type CommentRepository struct{}

func NewCommentRepository() *CommentRepository {
	return &CommentRepository{}
}

func (r *CommentRepository) Create(ctx context.Context, tx db.DBTX, c *item.Comment) (int64, error) {
	sqlStr, args, err := dialect.Insert("comments").
		Rows(goqu.Record{
			"text":      c.Text(),
			"item_id":   c.ItemID(),
			"author_id": c.AuthorID(),
			"created":   c.Created(),
		}).
		Returning("id").
		Prepared(true).ToSQL()
	if err != nil {
		return 0, infra.WrapRepoErr("failed to build comment insert", err)
	}

	var id int64
	if err := tx.QueryRow(ctx, sqlStr, args...).Scan(&id); err != nil {
		return 0, wrapWriteErr("failed to create comment", err)
	}
	return id, nil
}
