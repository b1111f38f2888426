package ports

import (
	"context"

	"github.com/google/uuid"

	"excel-analytics-api/internal/domain/user"
	"excel-analytics-api/internal/domain/user_file"
)

type AdminService interface {
	ListUsers(ctx context.Context) (user.Users, error)
	ListFiles(ctx context.Context) (user_file.UserFiles, error)
	DeleteUser(ctx context.Context, actingAdminID, targetID uuid.UUID) error
}
