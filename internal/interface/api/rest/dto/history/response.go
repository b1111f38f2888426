package history

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"excel-analytics-api/internal/domain/history"
)

type (
	Entry struct {
		UUID      uuid.UUID       `json:"id"`
		Action    string          `json:"action"`
		Details   json.RawMessage `json:"details,omitempty"`
		CreatedAt time.Time       `json:"createdAt"`
	}
	Entries      []Entry
	ResponseData struct {
		History Entries `json:"history"`
	}
)

func ToResponseEntries(es history.Entries) Entries {
	out := make(Entries, len(es))
	for idx, e := range es {
		out[idx] = Entry{
			UUID:      e.UUID,
			Action:    e.Action,
			Details:   e.Details,
			CreatedAt: e.CreatedAt,
		}
	}

	return out
}
