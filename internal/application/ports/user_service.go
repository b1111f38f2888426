package ports

import (
	"context"

	"excel-analytics-api/internal/domain/user"
)

type UserService interface {
	FindUserByID(ctx context.Context, uuid user.UUID) (*user.User, error)
	FindByEmail(ctx context.Context, email string) (*user.User, error)
	Register(ctx context.Context, u user.User, password string) (*user.User, error)
}
