package commands

import (
	"context"

	"shareit/internal/domain/user"
	"shareit/internal/infra"
	"shareit/internal/infra/db"
	"shareit/internal/pkg/errs"
)

var ErrDuplicateEmail = errs.New("email is already in use")

type CreateUserInput struct {
	Name  string
	Email string
}

type UpdateUserInput struct {
	Name  *string
	Email *string
}

type UserResult struct {
	ID    int64
	Name  string
	Email string
}

type UserCommands interface {
	Create(ctx context.Context, input CreateUserInput) (*UserResult, error)
	Update(ctx context.Context, userID int64, input UpdateUserInput) (*UserResult, error)
	Delete(ctx context.Context, userID int64) error
}

type userCommandsImpl struct {
	uow   UnitOfWork
	users UserRepository
}

func NewUserCommands(uow UnitOfWork, users UserRepository) UserCommands {
	return &userCommandsImpl{uow: uow, users: users}
}

func (c *userCommandsImpl) Create(ctx context.Context, input CreateUserInput) (*UserResult, error) {
	email, err := user.NewEmail(input.Email)
	if err != nil {
		return nil, err
	}
	entity, err := user.NewUser(input.Name, email)
	if err != nil {
		return nil, err
	}

	var createdID int64
	err = c.uow.Within(ctx, func(ctx context.Context, tx db.DBTX) error {
		id, txErr := c.users.Create(ctx, tx, entity)
		if txErr != nil {
			return txErr
		}
		createdID = id
		return nil
	})
	if err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return nil, errs.Mark(err, ErrDuplicateEmail)
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return &UserResult{ID: createdID, Name: entity.Name(), Email: entity.Email().String()}, nil
}

func (c *userCommandsImpl) Update(ctx context.Context, userID int64, input UpdateUserInput) (*UserResult, error) {
	entity, err := c.users.FindByID(ctx, userID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrUserNotFound)
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	var email *user.Email
	if input.Email != nil {
		parsed, vErr := user.NewEmail(*input.Email)
		if vErr != nil {
			return nil, vErr
		}
		email = &parsed
	}
	if err := entity.ApplyPatch(input.Name, email); err != nil {
		return nil, err
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx db.DBTX) error {
		return c.users.Update(ctx, tx, entity)
	})
	if err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return nil, errs.Mark(err, ErrDuplicateEmail)
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return &UserResult{ID: entity.ID(), Name: entity.Name(), Email: entity.Email().String()}, nil
}

func (c *userCommandsImpl) Delete(ctx context.Context, userID int64) error {
	err := c.uow.Within(ctx, func(ctx context.Context, tx db.DBTX) error {
		return c.users.Delete(ctx, tx, userID)
	})
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return errs.Mark(err, ErrUserNotFound)
		}
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return nil
}
