package account

import (
	"time"

	"github.com/google/uuid"
)

// AnonymousUserID marks an account that has not been bound to a durable
// owner yet. The first successful upload replaces it via SetOwner.
var AnonymousUserID = uuid.MustParse("00000000-0000-0001-0005-000000000007")

type (
	// Account identifies a recipient by email and carries the opaque
	// credentials guarding the private browse view.
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

func (a *Account) HasOwner() bool {
	return a.OwnerUserID != AnonymousUserID && a.OwnerUserID != uuid.Nil
}
