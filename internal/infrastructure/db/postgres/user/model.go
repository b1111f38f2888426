package user

import (
	"time"

	"github.com/google/uuid"
)

type (
	User struct {
		ID           uint64
		UUID         uuid.UUID
		Name         string
		Email        string
		PasswordHash string
		IsAdmin      bool

		CreatedAt time.Time
	}
	Users []*User
)
