package ports

import (
	"context"

	"github.com/google/uuid"

	"filetag-api/internal/domain/user"
)

type UserStore interface {
	Load(ctx context.Context) error
	Get(userID uuid.UUID) *user.User
	Create(ctx context.Context, primaryEmail string) (*user.User, error)
}
