package ports

import (
	"context"

	"github.com/google/uuid"

	"filetag-api/internal/domain/account"
)

// IdentityStore owns recipient accounts and their opaque credentials.
type IdentityStore interface {
	Load(ctx context.Context) error
	Get(email string) *account.Account
	GetOrCreate(ctx context.Context, email string) (*account.Account, error)
	IssueSignInCode(ctx context.Context, email string) (string, error)
	VerifySignInCode(ctx context.Context, email, code string) (string, error)
	VerifySignInKey(email, key string) bool
	SignOut(ctx context.Context, email string) error
	ResolveOwner(ctx context.Context, email string, mint func(context.Context) (uuid.UUID, error)) (uuid.UUID, error)
	SetOwner(ctx context.Context, email string, userID uuid.UUID) error
}
