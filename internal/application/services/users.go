package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"filetag-api/internal/application/ports"
	domain "filetag-api/internal/domain/user"
)

// UserService owns durable owner identities, decoupled from the
// transient emails uploads arrive with.
type UserService struct {
	mu   sync.RWMutex
	byID map[uuid.UUID]*domain.User
	repo domain.Repository
}

func NewUserService(repo domain.Repository) ports.UserStore {
	return &UserService{
		byID: make(map[uuid.UUID]*domain.User),
		repo: repo,
	}
}

func (us *UserService) Load(ctx context.Context) error {
	users, err := us.repo.FetchUsers(ctx)
	if err != nil {
		return fmt.Errorf("load users: %w", err)
	}

	us.mu.Lock()
	defer us.mu.Unlock()
	for _, u := range users {
		us.byID[u.UserID] = u
	}

	return nil
}

func (us *UserService) Get(userID uuid.UUID) *domain.User {
	us.mu.RLock()
	defer us.mu.RUnlock()
	return us.byID[userID]
}

func (us *UserService) Create(ctx context.Context, primaryEmail string) (*domain.User, error) {
	u := &domain.User{
		UserID:       uuid.New(),
		PrimaryEmail: normalizeEmail(primaryEmail),
		CreatedAt:    time.Now().UTC(),
	}
	if err := us.repo.SaveUser(ctx, u); err != nil {
		return nil, fmt.Errorf("save user %s: %w", u.UserID, err)
	}

	us.mu.Lock()
	us.byID[u.UserID] = u
	us.mu.Unlock()

	return u, nil
}
