package writerepo

import (
	"context"
	"errors"

	"github.com/doug-martin/goqu/v9"
	"github.com/jackc/pgx/v5"

	"shareit/internal/domain/user"
	"shareit/internal/infra"
	"shareit/internal/infra/db"
)

type UserRepository struct {
	db db.DBTX
}

func NewUserRepository(dbtx db.DBTX) *UserRepository {
	return &UserRepository{db: dbtx}
}

func (r *UserRepository) Create(ctx context.Context, tx db.DBTX, u *user.User) (int64, error) {
	sqlStr, args, err := dialect.Insert("users").
		Rows(goqu.Record{
			"name":  u.Name(),
			"email": u.Email().String(),
		}).
		Returning("id").
		Prepared(true).ToSQL()
	if err != nil {
		return 0, infra.WrapRepoErr("failed to build user insert", err)
	}

	var id int64
	if err := tx.QueryRow(ctx, sqlStr, args...).Scan(&id); err != nil {
		return 0, wrapWriteErr("failed to create user", err)
	}
	return id, nil
}

func (r *UserRepository) Update(ctx context.Context, tx db.DBTX, u *user.User) error {
	sqlStr, args, err := dialect.Update("users").
		Set(goqu.Record{
			"name":  u.Name(),
			"email": u.Email().String(),
		}).
		Where(goqu.C("id").Eq(u.ID())).
		Prepared(true).ToSQL()
	if err != nil {
		return infra.WrapRepoErr("failed to build user update", err)
	}

	tag, err := tx.Exec(ctx, sqlStr, args...)
	if err != nil {
		return wrapWriteErr("failed to update user", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, tx db.DBTX, id int64) error {
	sqlStr, args, err := dialect.Delete("users").
		Where(goqu.C("id").Eq(id)).
		Prepared(true).ToSQL()
	if err != nil {
		return infra.WrapRepoErr("failed to build user delete", err)
	}

	tag, err := tx.Exec(ctx, sqlStr, args...)
	if err != nil {
		return wrapWriteErr("failed to delete user", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*user.User, error) {
	sqlStr, args, err := dialect.From("users").
		Select(goqu.C("id"), goqu.C("name"), goqu.C("email")).
		Where(goqu.C("id").Eq(id)).
		Prepared(true).ToSQL()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build user query", err)
	}

	var (
		userID int64
		name   string
		email  string
	)
	err = r.db.QueryRow(ctx, sqlStr, args...).Scan(&userID, &name, &email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by ID", err)
	}

	// Stored emails were validated on the way in.
	addr, err := user.NewEmail(email)
	if err != nil {
		return nil, infra.WrapRepoErr("stored email is invalid", err)
	}
	return user.ReconstructUser(userID, name, addr), nil
}
