package readstore

import (
	"context"

	"github.com/doug-martin/goqu/v9"

	"shareit/internal/infra"
	"shareit/internal/infra/db"
	"shareit/internal/usecase/queries"
)

type CommentReadStore struct {
	db db.DBTX
}

func NewCommentReadStore(dbtx db.DBTX) *CommentReadStore {
	return &CommentReadStore{db: dbtx}
}

func commentSelect() *goqu.SelectDataset {
	return dialect.From(goqu.T("comments").As("c")).
		Join(goqu.T("users").As("u"), goqu.On(goqu.I("c.author_id").Eq(goqu.I("u.id")))).
		Select(
			goqu.I("c.id"),
			goqu.I("c.text"),
			goqu.I("u.name"),
			goqu.I("c.created"),
			goqu.I("c.item_id"),
		).
		Order(goqu.I("c.created").Desc())
}

func (r *CommentReadStore) FindByItem(ctx context.Context, itemID int64) ([]*queries.CommentView, error) {
	byItem, err := r.query(ctx, commentSelect().Where(goqu.I("c.item_id").Eq(itemID)))
	if err != nil {
		return nil, err
	}

	comments := byItem[itemID]
	if comments == nil {
		comments = []*queries.CommentView{}
	}
	return comments, nil
}

func (r *CommentReadStore) FindByItems(ctx context.Context, itemIDs []int64) (map[int64][]*queries.CommentView, error) {
	if len(itemIDs) == 0 {
		return map[int64][]*queries.CommentView{}, nil
	}
	return r.query(ctx, commentSelect().Where(goqu.I("c.item_id").In(itemIDs)))
}

func (r *CommentReadStore) query(ctx context.Context, ds *goqu.SelectDataset) (map[int64][]*queries.CommentView, error) {
	sqlStr, args, err := ds.Prepared(true).ToSQL()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build comment query", err)
	}

	rows, err := r.db.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list comments", err)
	}
	defer rows.Close()

	result := make(map[int64][]*queries.CommentView)
	for rows.Next() {
		var (
			view   queries.CommentView
			itemID int64
		)
		if err := rows.Scan(&view.ID, &view.Text, &view.AuthorName, &view.Created, &itemID); err != nil {
			return nil, infra.WrapRepoErr("failed to scan comment row", err)
		}
		result[itemID] = append(result[itemID], &view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate comment rows", err)
	}
	return result, nil
}
