package services

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"excel-analytics-api/internal/application/ports"
	"excel-analytics-api/internal/domain/history"
)

type HistoryService struct {
	logger            *zap.Logger
	historyRepository history.Repository
}

func NewHistoryService(logger *zap.Logger, historyRepository history.Repository) ports.HistoryService {
	return &HistoryService{
		logger:            logger,
		historyRepository: historyRepository,
	}
}

func (hs *HistoryService) Record(ctx context.Context, userID *uuid.UUID, action string, details any) {
	raw, err := encodeDetails(details)
	if err != nil {
		hs.logger.Warn("history details not encodable", zap.String("action", action), zap.Error(err))
	}

	if _, err = hs.historyRepository.CreateEntry(ctx, history.Entry{
		UserID:  userID,
		Action:  action,
		Details: raw,
	}); err != nil {
		hs.logger.Error("history write failed", zap.String("action", action), zap.Error(err))
	}
}

func (hs *HistoryService) FindUserHistory(ctx context.Context, userID uuid.UUID) (history.Entries, error) {
	return hs.historyRepository.FetchUserEntries(ctx, userID)
}

func encodeDetails(details any) (json.RawMessage, error) {
	switch d := details.(type) {
	case nil:
		return nil, nil
	case json.RawMessage:
		if json.Valid(d) {
			return d, nil
		}
		return nil, nil
	case []byte:
		if json.Valid(d) {
			return d, nil
		}
		return nil, nil
	default:
		return json.Marshal(d)
	}
}
