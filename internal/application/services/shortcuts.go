package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"filetag-api/internal/application/ports"
	domain "filetag-api/internal/domain/shortcut"
)

// ShortcutService is the addressing layer: it maps opaque access keys
// to physical destinations and indexes them by key, owner and session.
type ShortcutService struct {
	mu        sync.RWMutex
	byKey     map[string]*domain.Shortcut
	bySession map[string][]*domain.Shortcut
	byOwner   map[uuid.UUID][]*domain.Shortcut
	repo      domain.Repository
}

func NewShortcutService(repo domain.Repository) ports.ShortcutStore {
	return &ShortcutService{
		byKey:     make(map[string]*domain.Shortcut),
		bySession: make(map[string][]*domain.Shortcut),
		byOwner:   make(map[uuid.UUID][]*domain.Shortcut),
		repo:      repo,
	}
}

func (ss *ShortcutService) Load(ctx context.Context) error {
	scs, err := ss.repo.FetchShortcuts(ctx)
	if err != nil {
		return fmt.Errorf("load shortcuts: %w", err)
	}

	ss.mu.Lock()
	defer ss.mu.Unlock()
	for _, sc := range scs {
		ss.index(sc)
	}

	return nil
}

// Create mints a fresh access key for the given properties and
// persists the shortcut.
func (ss *ShortcutService) Create(ctx context.Context, props domain.Shortcut) (*domain.Shortcut, error) {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	key := newOpaqueKey()
	for ss.byKey[key] != nil {
		key = newOpaqueKey()
	}

	sc := &domain.Shortcut{
		ShortcutKey:   key,
		OwnerUserID:   props.OwnerUserID,
		OriginalName:  props.OriginalName,
		Destination:   props.Destination,
		ContentType:   props.ContentType,
		ContentLength: props.ContentLength,
		SessionID:     props.SessionID,
		CreatedDate:   time.Now().UTC(),
	}
	if err := ss.repo.SaveShortcut(ctx, sc); err != nil {
		return nil, fmt.Errorf("save shortcut for session %s: %w", sc.SessionID, err)
	}
	ss.index(sc)

	return sc, nil
}

func (ss *ShortcutService) GetByKey(key string) *domain.Shortcut {
	ss.mu.RLock()
	defer ss.mu.RUnlock()
	return ss.byKey[normalizeKey(key)]
}

// GetBySession returns the session's shortcuts in insertion order.
func (ss *ShortcutService) GetBySession(sessionID string) domain.Shortcuts {
	ss.mu.RLock()
	defer ss.mu.RUnlock()

	scs := ss.bySession[sessionID]
	out := make(domain.Shortcuts, len(scs))
	copy(out, scs)
	return out
}

func (ss *ShortcutService) GetByOwner(ownerUserID uuid.UUID) domain.Shortcuts {
	ss.mu.RLock()
	defer ss.mu.RUnlock()

	scs := ss.byOwner[ownerUserID]
	out := make(domain.Shortcuts, len(scs))
	copy(out, scs)
	return out
}

// caller holds ss.mu
func (ss *ShortcutService) index(sc *domain.Shortcut) {
	ss.byKey[sc.ShortcutKey] = sc
	ss.bySession[sc.SessionID] = append(ss.bySession[sc.SessionID], sc)
	if sc.OwnerUserID != uuid.Nil {
		ss.byOwner[sc.OwnerUserID] = append(ss.byOwner[sc.OwnerUserID], sc)
	}
}
