package commands

import (
	"context"
	"time"

	"shareit/internal/domain/item"
	"shareit/internal/infra"
	"shareit/internal/infra/db"
	"shareit/internal/pkg/clock"
	"shareit/internal/pkg/errs"
)

var (
	ErrRequestNotFound   = errs.New("item request not found")
	ErrCommentNotAllowed = errs.New("comments allowed only after a completed approved booking")
)

// commentEligibilitySkew shifts "now" slightly backwards before the
// eligibility check so a booking that ended an instant ago still counts.
// The magnitude is not a business rule, only latency tolerance.
const commentEligibilitySkew = time.Second

type AddItemInput struct {
	Name        string
	Description string
	Available   bool
	RequestID   *int64
}

type UpdateItemInput struct {
	Name        *string
	Description *string
	Available   *bool
}

type ItemResult struct {
	ID          int64
	Name        string
	Description string
	Available   bool
	RequestID   *int64
}

type CommentResult struct {
	ID         int64
	Text       string
	AuthorName string
	Created    time.Time
}

type ItemCommands interface {
	Add(ctx context.Context, ownerID int64, input AddItemInput) (*ItemResult, error)
	Update(ctx context.Context, ownerID, itemID int64, input UpdateItemInput) (*ItemResult, error)
	AddComment(ctx context.Context, actorID, itemID int64, text string) (*CommentResult, error)
}

type itemCommandsImpl struct {
	uow      UnitOfWork
	items    ItemRepository
	comments CommentRepository
	users    UserRepository
	reads    CommandReads
	clock    clock.Clock
}

func NewItemCommands(uow UnitOfWork, items ItemRepository, comments CommentRepository, users UserRepository, reads CommandReads, clk clock.Clock) ItemCommands {
	return &itemCommandsImpl{
		uow:      uow,
		items:    items,
		comments: comments,
		users:    users,
		reads:    reads,
		clock:    clk,
	}
}

func (c *itemCommandsImpl) Add(ctx context.Context, ownerID int64, input AddItemInput) (*ItemResult, error) {
	if err := c.requireUser(ctx, ownerID); err != nil {
		return nil, err
	}
	if input.RequestID != nil {
		exists, err := c.reads.RequestExists(ctx, *input.RequestID)
		if err != nil {
			return nil, errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if !exists {
			return nil, errs.Mark(errs.Newf("item request %d not found", *input.RequestID), ErrRequestNotFound)
		}
	}

	entity, err := item.NewItem(input.Name, input.Description, input.Available, ownerID, input.RequestID)
	if err != nil {
		return nil, err
	}

	var createdID int64
	err = c.uow.Within(ctx, func(ctx context.Context, tx db.DBTX) error {
		id, txErr := c.items.Create(ctx, tx, entity)
		if txErr != nil {
			return txErr
		}
		createdID = id
		return nil
	})
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return &ItemResult{
		ID:          createdID,
		Name:        entity.Name(),
		Description: entity.Description(),
		Available:   entity.Available(),
		RequestID:   entity.RequestID(),
	}, nil
}

func (c *itemCommandsImpl) Update(ctx context.Context, ownerID, itemID int64, input UpdateItemInput) (*ItemResult, error) {
	if err := c.requireUser(ctx, ownerID); err != nil {
		return nil, err
	}

	entity, err := c.items.FindByID(ctx, itemID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrItemNotFound)
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if !entity.IsOwnedBy(ownerID) {
		return nil, item.ErrNotOwner
	}
	if err := entity.ApplyPatch(input.Name, input.Description, input.Available); err != nil {
		return nil, err
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx db.DBTX) error {
		return c.items.Update(ctx, tx, entity)
	})
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return &ItemResult{
		ID:          entity.ID(),
		Name:        entity.Name(),
		Description: entity.Description(),
		Available:   entity.Available(),
		RequestID:   entity.RequestID(),
	}, nil
}

// AddComment gates comment creation on booking history: the actor must
// have at least one APPROVED booking on the item that already ended,
// judged against the skewed "now". The comment is stamped with that
// same instant.
func (c *itemCommandsImpl) AddComment(ctx context.Context, actorID, itemID int64, text string) (*CommentResult, error) {
	if _, err := c.reads.ItemByID(ctx, itemID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrItemNotFound)
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	author, err := c.users.FindByID(ctx, actorID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrUserNotFound)
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	now := c.clock.Now().Add(-commentEligibilitySkew)

	eligible, err := c.reads.HasFinishedBooking(ctx, actorID, itemID, now)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if !eligible {
		return nil, ErrCommentNotAllowed
	}

	entity, err := item.NewComment(text, itemID, actorID, now)
	if err != nil {
		return nil, err
	}

	var createdID int64
	err = c.uow.Within(ctx, func(ctx context.Context, tx db.DBTX) error {
		id, txErr := c.comments.Create(ctx, tx, entity)
		if txErr != nil {
			return txErr
		}
		createdID = id
		return nil
	})
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return &CommentResult{
		ID:         createdID,
		Text:       entity.Text(),
		AuthorName: author.Name(),
		Created:    entity.Created(),
	}, nil
}

func (c *itemCommandsImpl) requireUser(ctx context.Context, id int64) error {
	exists, err := c.reads.UserExists(ctx, id)
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if !exists {
		return errs.Mark(errs.Newf("user %d not found", id), ErrUserNotFound)
	}
	return nil
}
