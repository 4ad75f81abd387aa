package account

import (
	"time"

	"github.com/google/uuid"
)

type (
	Account struct {
		Email          string
		OwnerUserID    uuid.UUID
		ActivationKey  string
		SignInCodeHash []byte
		SignInKey      string
		IsActivated    bool

		CreatedAt time.Time
		UpdatedAt time.Time
	}
	Accounts []*Account
)
