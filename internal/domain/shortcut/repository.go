package shortcut

import (
	"context"
)

type Repository interface {
	FetchShortcuts(ctx context.Context) (Shortcuts, error)
	SaveShortcut(ctx context.Context, req *Shortcut) error
}
