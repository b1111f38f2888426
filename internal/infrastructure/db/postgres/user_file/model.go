package user_file

import (
	"time"

	"github.com/google/uuid"
)

type (
	UserFile struct {
		ID     uint64
		UUID   uuid.UUID
		UserID uuid.UUID

		FileName    string
		StoragePath string
		MimeType    string
		// raw jsonb
		Data []byte

		UploadedAt time.Time

		OwnerEmail *string
	}
	UserFiles []*UserFile
)
