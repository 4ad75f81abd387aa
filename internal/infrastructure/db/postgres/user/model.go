package user

import (
	"time"

	"github.com/google/uuid"
)

type (
	User struct {
		UserID       uuid.UUID
		PrimaryEmail string

		CreatedAt time.Time
	}
	Users []*User
)
