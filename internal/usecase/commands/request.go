package commands

import (
	"context"
	"time"

	"shareit/internal/domain/request"
	"shareit/internal/infra/db"
	"shareit/internal/pkg/clock"
	"shareit/internal/pkg/errs"
)

type RequestResult struct {
	ID          int64
	Description string
	Created     time.Time
}

type RequestCommands interface {
	Add(ctx context.Context, requestorID int64, description string) (*RequestResult, error)
}

type requestCommandsImpl struct {
	uow      UnitOfWork
	requests RequestRepository
	reads    CommandReads
	clock    clock.Clock
}

func NewRequestCommands(uow UnitOfWork, requests RequestRepository, reads CommandReads, clk clock.Clock) RequestCommands {
	return &requestCommandsImpl{
		uow:      uow,
		requests: requests,
		reads:    reads,
		clock:    clk,
	}
}

func (c *requestCommandsImpl) Add(ctx context.Context, requestorID int64, description string) (*RequestResult, error) {
	exists, err := c.reads.UserExists(ctx, requestorID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if !exists {
		return nil, errs.Mark(errs.Newf("user %d not found", requestorID), ErrUserNotFound)
	}

	entity, err := request.NewItemRequest(description, requestorID, c.clock.Now())
	if err != nil {
		return nil, err
	}

	var createdID int64
	err = c.uow.Within(ctx, func(ctx context.Context, tx db.DBTX) error {
		id, txErr := c.requests.Create(ctx, tx, entity)
		if txErr != nil {
			return txErr
		}
		createdID = id
		return nil
	})
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return &RequestResult{
		ID:          createdID,
		Description: entity.Description(),
		Created:     entity.Created(),
	}, nil
}
