package ports

import (
	"context"

	"github.com/google/uuid"
)

type AnalysisService interface {
	Analyze(ctx context.Context, userID uuid.UUID) (string, error)
}
