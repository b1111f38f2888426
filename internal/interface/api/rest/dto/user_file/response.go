package user_file

import (
	"time"

	"github.com/google/uuid"

	"excel-analytics-api/internal/domain/user_file"
)

type (
	UserFile struct {
		UUID       uuid.UUID      `json:"id"`
		UserID     uuid.UUID      `json:"userId"`
		OwnerEmail string         `json:"ownerEmail,omitempty"`
		FileName   string         `json:"filename"`
		MimeType   string         `json:"mimeType"`
		Data       user_file.Rows `json:"data"`
		UploadedAt time.Time      `json:"uploadedAt"`
	}
	UserFiles    []UserFile
	ResponseData struct {
		Files UserFiles `json:"files"`
	}
	UploadResponse struct {
		Message  string    `json:"message"`
		FileID   uuid.UUID `json:"fileId"`
		FileName string    `json:"filename"`
	}
)
