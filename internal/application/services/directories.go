package services

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"filetag-api/internal/application/ports"
	domain "filetag-api/internal/domain/directory"
)

// DirectoryService maps upload sessions to physical storage
// namespaces. Directories are created lazily on the first part of a
// session and never deleted here; retention is somebody else's job.
type DirectoryService struct {
	mu         sync.RWMutex
	byID       map[uuid.UUID]*domain.Directory
	bySession  map[string]*domain.Directory
	byOwner    map[uuid.UUID][]*domain.Directory
	repo       domain.Repository
	files      ports.FileStore
	uploadRoot string
}

func NewDirectoryService(
	repo domain.Repository,
	files ports.FileStore,
	uploadRoot string,
) ports.DirectoryStore {
	return &DirectoryService{
		byID:       make(map[uuid.UUID]*domain.Directory),
		bySession:  make(map[string]*domain.Directory),
		byOwner:    make(map[uuid.UUID][]*domain.Directory),
		repo:       repo,
		files:      files,
		uploadRoot: uploadRoot,
	}
}

func (ds *DirectoryService) Load(ctx context.Context) error {
	dirs, err := ds.repo.FetchDirectories(ctx)
	if err != nil {
		return fmt.Errorf("load directories: %w", err)
	}

	ds.mu.Lock()
	defer ds.mu.Unlock()
	for _, d := range dirs {
		ds.index(d)
	}

	return nil
}

// GetOrCreate is keyed by session id. The physical path is derived
// from the directory id once at creation and never changes.
func (ds *DirectoryService) GetOrCreate(
	ctx context.Context,
	sessionID string,
	ownerUserID uuid.UUID,
	usageType string,
) (*domain.Directory, error) {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	if d, ok := ds.bySession[sessionID]; ok {
		return d, nil
	}

	id := uuid.New()
	d := &domain.Directory{
		DirectoryID:  id,
		SessionID:    sessionID,
		OwnerUserID:  ownerUserID,
		PhysicalPath: filepath.Join(ds.uploadRoot, id.String()),
		UsageType:    usageType,
		IsEnabled:    true,
		CreatedDate:  time.Now().UTC(),
	}
	if err := ds.repo.SaveDirectory(ctx, d); err != nil {
		return nil, fmt.Errorf("save directory for session %s: %w", sessionID, err)
	}
	ds.index(d)

	return d, nil
}

// EnsurePhysicalStorage is idempotent: an already existing directory
// is success, any other failure is fatal to the enclosing upload.
func (ds *DirectoryService) EnsurePhysicalStorage(d *domain.Directory) error {
	if err := ds.files.EnsureDir(d.PhysicalPath); err != nil {
		return fmt.Errorf("ensure storage %s: %w", d.PhysicalPath, err)
	}
	return nil
}

// ListEntries lists the physical directory contents. Diagnostic use only.
func (ds *DirectoryService) ListEntries(d *domain.Directory) ([]string, error) {
	return ds.files.ListDir(d.PhysicalPath)
}

// caller holds ds.mu
func (ds *DirectoryService) index(d *domain.Directory) {
	ds.byID[d.DirectoryID] = d
	ds.bySession[d.SessionID] = d
	ds.byOwner[d.OwnerUserID] = append(ds.byOwner[d.OwnerUserID], d)
}
