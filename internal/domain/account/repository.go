package account

import (
	"context"
)

// Repository persists accounts with replace-by-email semantics and loads
// the full collection once at startup to rebuild the in-memory index.
type Repository interface {
	FetchAccounts(ctx context.Context) (Accounts, error)
	SaveAccount(ctx context.Context, req *Account) error
}
