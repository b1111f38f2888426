package user

import (
	"context"
	"errors"
)

var ErrEmailAlreadyExists = errors.New("user already exists")

// Fetch* methods return (nil, nil) when nothing matches.
type Repository interface {
	FetchUserByID(ctx context.Context, uuid UUID) (*User, error)
	FetchUserByEmail(ctx context.Context, email string) (*User, error)
	FetchUsers(ctx context.Context) (Users, error)
	CreateUser(ctx context.Context, req User) (*User, error)
	DeleteUser(ctx context.Context, uuid UUID) (*User, error)
}
