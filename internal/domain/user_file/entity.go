package user_file

import (
	"time"

	"github.com/google/uuid"
)

type (
	// Row is one decoded spreadsheet line keyed by column header.
	Row  = map[string]any
	Rows []Row

	UserFile struct {
		UUID   uuid.UUID
		UserID uuid.UUID

		FileName    string
		StoragePath string
		MimeType    string
		Data        Rows

		UploadedAt time.Time

		// only filled by admin listings
		OwnerEmail string
	}
	UserFiles []*UserFile
)
