package user_file

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	FetchUserFiles(ctx context.Context, userID uuid.UUID) (UserFiles, error)
	FetchAllFiles(ctx context.Context) (UserFiles, error)
	FetchUserFile(ctx context.Context, userID, fileID uuid.UUID) (*UserFile, error)
	FetchLatestUserFile(ctx context.Context, userID uuid.UUID) (*UserFile, error)
	// UpsertUserFile inserts or replaces the record keyed by (UserID, FileName).
	UpsertUserFile(ctx context.Context, req *UserFile) (*UserFile, error)
	DeleteUserFile(ctx context.Context, fileID uuid.UUID) error
}
