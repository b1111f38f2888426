package services

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"excel-analytics-api/internal/application/ports"
	domain "excel-analytics-api/internal/domain/user_file"
)

func deleteBlob(ctx context.Context, logger *zap.Logger, storage ports.BlobStorage, uf *domain.UserFile) error {
	err := storage.Delete(ctx, uf.StoragePath)
	if errors.Is(err, ports.ErrBlobNotFound) {
		logger.Warn("blob already missing",
			zap.String("file_id", uf.UUID.String()),
			zap.String("path", uf.StoragePath),
		)
		return nil
	}

	return err
}
