package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"excel-analytics-api/internal/domain/history"
)

type HistoryRepository struct {
	mu      sync.RWMutex
	entries []history.Entry
}

func NewHistoryRepository() *HistoryRepository {
	return &HistoryRepository{}
}

func (r *HistoryRepository) CreateEntry(_ context.Context, req history.Entry) (*history.Entry, error) {
	req.UUID = uuid.New()
	req.CreatedAt = time.Now().UTC()

	r.mu.Lock()
	r.entries = append(r.entries, req)
	r.mu.Unlock()

	e := req
	return &e, nil
}

// FetchUserEntries walks the append-only log backwards, so the newest entry
// comes first.
func (r *HistoryRepository) FetchUserEntries(_ context.Context, userID uuid.UUID) (history.Entries, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	es := history.Entries{}
	for i := len(r.entries) - 1; i >= 0; i-- {
		e := r.entries[i]
		if e.UserID != nil && *e.UserID == userID {
			es = append(es, &e)
		}
	}
	return es, nil
}
