package queries

import (
	"context"

	"shareit/internal/infra"
	"shareit/internal/pkg/errs"
)

var ErrRequestNotFound = errs.New("item request not found")

type RequestQueries interface {
	Get(ctx context.Context, actorID, requestID int64) (*RequestView, error)
	ListByRequestor(ctx context.Context, actorID int64) ([]*RequestView, error)
	ListAllExcept(ctx context.Context, actorID int64) ([]*RequestView, error)
}

// RequestViewRepo lists requests newest first; answers are attached by
// the query service with one batched lookup.
type RequestViewRepo interface {
	FindByID(ctx context.Context, id int64) (*RequestView, error)
	FindByRequestor(ctx context.Context, requestorID int64) ([]*RequestView, error)
	FindAllExcept(ctx context.Context, userID int64) ([]*RequestView, error)
	FindAnswers(ctx context.Context, requestIDs []int64) (map[int64][]*RequestAnswerView, error)
}

type requestQueriesImpl struct {
	repo  RequestViewRepo
	users UserExistenceRepo
}

func NewRequestQueries(repo RequestViewRepo, users UserExistenceRepo) RequestQueries {
	return &requestQueriesImpl{repo: repo, users: users}
}

func (q *requestQueriesImpl) Get(ctx context.Context, actorID, requestID int64) (*RequestView, error) {
	if err := q.requireUser(ctx, actorID); err != nil {
		return nil, err
	}

	view, err := q.repo.FindByID(ctx, requestID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrRequestNotFound)
		}
		return nil, err
	}

	return q.attachAnswers(ctx, view)
}

func (q *requestQueriesImpl) ListByRequestor(ctx context.Context, actorID int64) ([]*RequestView, error) {
	if err := q.requireUser(ctx, actorID); err != nil {
		return nil, err
	}
	views, err := q.repo.FindByRequestor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	return q.attachAnswersAll(ctx, views)
}

func (q *requestQueriesImpl) ListAllExcept(ctx context.Context, actorID int64) ([]*RequestView, error) {
	if err := q.requireUser(ctx, actorID); err != nil {
		return nil, err
	}
	views, err := q.repo.FindAllExcept(ctx, actorID)
	if err != nil {
		return nil, err
	}
	return q.attachAnswersAll(ctx, views)
}

func (q *requestQueriesImpl) attachAnswers(ctx context.Context, view *RequestView) (*RequestView, error) {
	withAnswers, err := q.attachAnswersAll(ctx, []*RequestView{view})
	if err != nil {
		return nil, err
	}
	return withAnswers[0], nil
}

func (q *requestQueriesImpl) attachAnswersAll(ctx context.Context, views []*RequestView) ([]*RequestView, error) {
	if len(views) == 0 {
		return []*RequestView{}, nil
	}

	ids := make([]int64, len(views))
	for i, v := range views {
		ids[i] = v.ID
	}
	answers, err := q.repo.FindAnswers(ctx, ids)
	if err != nil {
		return nil, err
	}

	for _, v := range views {
		v.Items = answers[v.ID]
		if v.Items == nil {
			v.Items = []*RequestAnswerView{}
		}
	}
	return views, nil
}

func (q *requestQueriesImpl) requireUser(ctx context.Context, id int64) error {
	exists, err := q.users.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return errs.Mark(errs.Newf("user %d not found", id), ErrUserNotFound)
	}
	return nil
}
