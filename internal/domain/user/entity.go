package user

import (
	"time"

	"github.com/google/uuid"
)

type (
	// User is a durable owner identity decoupled from the transient
	// email an upload arrives with.
	User struct {
		UserID       uuid.UUID
		PrimaryEmail string

		CreatedAt time.Time
	}
	Users []*User
)
