package ports

import (
	"context"

	"github.com/google/uuid"

	"filetag-api/internal/domain/directory"
)

// DirectoryStore maps upload sessions to physical storage namespaces.
type DirectoryStore interface {
	Load(ctx context.Context) error
	GetOrCreate(ctx context.Context, sessionID string, ownerUserID uuid.UUID, usageType string) (*directory.Directory, error)
	EnsurePhysicalStorage(d *directory.Directory) error
	ListEntries(d *directory.Directory) ([]string, error)
}
