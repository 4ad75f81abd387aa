package ports

import (
	"context"

	"github.com/google/uuid"

	"filetag-api/internal/domain/shortcut"
)

// ShortcutStore is the addressing layer recipients use to retrieve
// files. Keys are opaque and non-enumerable: they are the sole access
// credential for anonymous downloads.
type ShortcutStore interface {
	Load(ctx context.Context) error
	Create(ctx context.Context, props shortcut.Shortcut) (*shortcut.Shortcut, error)
	GetByKey(key string) *shortcut.Shortcut
	GetBySession(sessionID string) shortcut.Shortcuts
	GetByOwner(ownerUserID uuid.UUID) shortcut.Shortcuts
}
