package user

import (
	"time"

	"github.com/google/uuid"
)

type (
	User struct {
		UUID      uuid.UUID `json:"id"`
		Name      string    `json:"name"`
		Email     string    `json:"email"`
		IsAdmin   bool      `json:"isAdmin"`
		CreatedAt time.Time `json:"createdAt"`
	}
	Users        []User
	ResponseData struct {
		Users Users `json:"users"`
	}
)
