package history

import (
	"time"

	"github.com/google/uuid"
)

type (
	Entry struct {
		ID      uint64
		UUID    uuid.UUID
		UserID  *uuid.UUID
		Action  string
		Details []byte

		CreatedAt time.Time
	}
	Entries []*Entry
)
