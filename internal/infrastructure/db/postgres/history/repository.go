package history

import (
	"context"

	"github.com/google/uuid"

	"excel-analytics-api/internal/domain/history"
	"excel-analytics-api/internal/infrastructure/db/postgres"
)

type Repository struct {
	db postgres.DB
}

func NewRepository(db postgres.DB) history.Repository {
	return &Repository{db: db}
}

func (r *Repository) CreateEntry(ctx context.Context, req history.Entry) (*history.Entry, error) {
	var details []byte
	if len(req.Details) > 0 {
		details = req.Details
	}

	e := new(Entry)
	if err := r.db.QueryRow(ctx, InsertEntry, req.UserID, req.Action, details).Scan(
		&e.ID,
		&e.UUID,
		&e.UserID,
		&e.Action,
		&e.Details,
		&e.CreatedAt,
	); err != nil {
		return nil, err
	}

	return fromDBModel(e), nil
}

func (r *Repository) FetchUserEntries(ctx context.Context, userID uuid.UUID) (history.Entries, error) {
	rows, err := r.db.Query(ctx, SelectUserEntries, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var es Entries
	for rows.Next() {
		e := new(Entry)
		if err = rows.Scan(
			&e.ID,
			&e.UUID,
			&e.UserID,
			&e.Action,
			&e.Details,
			&e.CreatedAt,
		); err != nil {
			return nil, err
		}

		es = append(es, e)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return fromDBModels(&es), nil
}
