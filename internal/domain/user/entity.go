package user

import (
	"time"

	"github.com/google/uuid"
)

type (
	UUID = uuid.UUID
	User struct {
		UUID         UUID
		Name         string
		Email        string
		PasswordHash string
		IsAdmin      bool

		CreatedAt time.Time
	}
	Users []*User
)
