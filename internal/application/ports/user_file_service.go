package ports

import (
	"context"

	"github.com/google/uuid"

	"excel-analytics-api/internal/domain/user_file"
)

type UserFileService interface {
	Upload(ctx context.Context, ownerID uuid.UUID, fileName, mimeType string, data []byte) (*user_file.UserFile, error)
	FindUserFiles(ctx context.Context, userID uuid.UUID) (user_file.UserFiles, error)
	DeleteUserFile(ctx context.Context, userID, fileID uuid.UUID) error
}
