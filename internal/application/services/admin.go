package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"excel-analytics-api/internal/application/ports"
	"excel-analytics-api/internal/domain/user"
	"excel-analytics-api/internal/domain/user_file"
	"excel-analytics-api/internal/infrastructure/mq"
)

type AdminService struct {
	logger             *zap.Logger
	userRepository     user.Repository
	userFileRepository user_file.Repository
	storage            ports.BlobStorage
	mq                 ports.EventPublisher
	mCounter           *prometheus.CounterVec
}

func NewAdminService(
	logger *zap.Logger,
	userRepository user.Repository,
	userFileRepository user_file.Repository,
	storage ports.BlobStorage,
	mq ports.EventPublisher,
	mCounter *prometheus.CounterVec,
) ports.AdminService {
	return &AdminService{
		logger:             logger,
		userRepository:     userRepository,
		userFileRepository: userFileRepository,
		storage:            storage,
		mq:                 mq,
		mCounter:           mCounter,
	}
}

func (as *AdminService) ListUsers(ctx context.Context) (user.Users, error) {
	return as.userRepository.FetchUsers(ctx)
}

func (as *AdminService) ListFiles(ctx context.Context) (user_file.UserFiles, error) {
	return as.userFileRepository.FetchAllFiles(ctx)
}

// DeleteUser removes every file of the target (blob, then record) before
// the user. Stopping halfway leaves a user with fewer files, never files
// without an owner, so a retry finishes the job.
func (as *AdminService) DeleteUser(ctx context.Context, actingAdminID, targetID uuid.UUID) error {
	if actingAdminID == targetID {
		return ErrInvalidOperation
	}

	target, err := as.userRepository.FetchUserByID(ctx, targetID)
	if err != nil {
		return err
	}
	if target == nil {
		return ErrNotFound
	}

	files, err := as.userFileRepository.FetchUserFiles(ctx, targetID)
	if err != nil {
		return err
	}
	for _, uf := range files {
		if err = deleteBlob(ctx, as.logger, as.storage, uf); err != nil {
			return err
		}
		if err = as.userFileRepository.DeleteUserFile(ctx, uf.UUID); err != nil {
			return err
		}
	}

	if _, err = as.userRepository.DeleteUser(ctx, targetID); err != nil {
		return err
	}

	as.logger.Info("user deleted by admin",
		zap.String("admin_id", actingAdminID.String()),
		zap.String("user_id", targetID.String()),
		zap.Int("files", len(files)),
	)
	as.mq.Publish(mq.NewEvent(mq.UserDeleted, targetID.String(), map[string]any{
		"email":      target.Email,
		"deleted_by": actingAdminID.String(),
		"files":      len(files),
	}))
	as.mCounter.WithLabelValues("user_deleted_total").Inc()

	return nil
}
