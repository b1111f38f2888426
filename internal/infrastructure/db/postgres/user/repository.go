package user

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"excel-analytics-api/internal/domain/user"
	"excel-analytics-api/internal/infrastructure/db/postgres"
)

type Repository struct {
	db postgres.DB
}

func NewRepository(db postgres.DB) user.Repository {
	return &Repository{db: db}
}

func scanTargets(u *User) []any {
	return []any{
		&u.ID,
		&u.UUID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.IsAdmin,

		&u.CreatedAt,
	}
}

func (r *Repository) FetchUsers(ctx context.Context) (user.Users, error) {
	rows, err := r.db.Query(ctx, SelectUsers)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var us Users
	for rows.Next() {
		u := new(User)
		if err = rows.Scan(scanTargets(u)...); err != nil {
			return nil, err
		}

		us = append(us, u)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return fromDBModels(&us), nil
}

func (r *Repository) FetchUserByID(ctx context.Context, uuid user.UUID) (*user.User, error) {
	return r.fetchOne(ctx, SelectUserByID, uuid)
}

func (r *Repository) FetchUserByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.fetchOne(ctx, SelectUserByEmail, email)
}

func (r *Repository) CreateUser(ctx context.Context, req user.User) (*user.User, error) {
	u := new(User)

	err := r.db.QueryRow(
		ctx,
		InsertUser,
		req.Name, req.Email, req.PasswordHash, req.IsAdmin,
	).Scan(scanTargets(u)...)
	if err != nil {
		if postgres.IsPgUniqueViolation(err) {
			return nil, user.ErrEmailAlreadyExists
		}
		return nil, err
	}

	return fromDBModel(u), nil
}

// DeleteUser fails with a foreign key violation while the user still owns
// files.
func (r *Repository) DeleteUser(ctx context.Context, uuid user.UUID) (*user.User, error) {
	return r.fetchOne(ctx, DeleteUserByUUID, uuid)
}

func (r *Repository) fetchOne(ctx context.Context, query string, arg any) (*user.User, error) {
	u := new(User)
	if err := r.db.QueryRow(ctx, query, arg).Scan(scanTargets(u)...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(u), nil
}
