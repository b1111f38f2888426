package user_file

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"excel-analytics-api/internal/domain/user_file"
	"excel-analytics-api/internal/infrastructure/db/postgres"
)

type Repository struct {
	db postgres.DB
}

func NewRepository(db postgres.DB) user_file.Repository {
	return &Repository{db: db}
}

func scanTargets(uf *UserFile) []any {
	return []any{
		&uf.ID,
		&uf.UUID,
		&uf.UserID,

		&uf.FileName,
		&uf.StoragePath,
		&uf.MimeType,
		&uf.Data,

		&uf.UploadedAt,
		&uf.OwnerEmail,
	}
}

func (r *Repository) FetchUserFiles(ctx context.Context, userID uuid.UUID) (user_file.UserFiles, error) {
	return r.fetchMany(ctx, SelectUserFiles, userID)
}

func (r *Repository) FetchAllFiles(ctx context.Context) (user_file.UserFiles, error) {
	return r.fetchMany(ctx, SelectAllFiles)
}

func (r *Repository) FetchUserFile(ctx context.Context, userID, fileID uuid.UUID) (*user_file.UserFile, error) {
	return r.fetchOne(ctx, SelectUserFile, fileID, userID)
}

func (r *Repository) FetchLatestUserFile(ctx context.Context, userID uuid.UUID) (*user_file.UserFile, error) {
	return r.fetchOne(ctx, SelectLatestUserFile, userID)
}

func (r *Repository) UpsertUserFile(ctx context.Context, req *user_file.UserFile) (*user_file.UserFile, error) {
	data, err := encodeData(req.Data)
	if err != nil {
		return nil, err
	}

	uf := new(UserFile)
	if err = r.db.QueryRow(
		ctx,
		UpsertUserFile,
		req.UserID, req.FileName, req.StoragePath, req.MimeType, data,
	).Scan(scanTargets(uf)...); err != nil {
		return nil, err
	}

	return fromDBModel(uf)
}

func (r *Repository) DeleteUserFile(ctx context.Context, fileID uuid.UUID) error {
	_, err := r.db.Exec(ctx, DeleteUserFileByUUID, fileID)
	return err
}

func (r *Repository) fetchOne(ctx context.Context, query string, args ...any) (*user_file.UserFile, error) {
	uf := new(UserFile)
	if err := r.db.QueryRow(ctx, query, args...).Scan(scanTargets(uf)...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(uf)
}

func (r *Repository) fetchMany(ctx context.Context, query string, args ...any) (user_file.UserFiles, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ufs UserFiles
	for rows.Next() {
		uf := new(UserFile)
		if err = rows.Scan(scanTargets(uf)...); err != nil {
			return nil, err
		}

		ufs = append(ufs, uf)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return fromDBModels(&ufs)
}
