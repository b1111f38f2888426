package history

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type (
	Entry struct {
		UUID uuid.UUID
		// nil for attempts made without a resolvable identity
		UserID  *uuid.UUID
		Action  string
		Details json.RawMessage

		CreatedAt time.Time
	}
	Entries []*Entry
)
