package ports

import (
	"context"

	"github.com/google/uuid"

	"excel-analytics-api/internal/domain/history"
)

type HistoryService interface {
	// Record never fails the caller; write errors are logged.
	Record(ctx context.Context, userID *uuid.UUID, action string, details any)
	FindUserHistory(ctx context.Context, userID uuid.UUID) (history.Entries, error)
}
