package history

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	CreateEntry(ctx context.Context, req Entry) (*Entry, error)
	FetchUserEntries(ctx context.Context, userID uuid.UUID) (Entries, error)
}
