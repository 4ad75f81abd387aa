package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/crypto/bcrypt"

	"filetag-api/internal/application/ports"
	domain "filetag-api/internal/domain/account"
)

var (
	ErrAccountNotFound   = errors.New("account not found")
	ErrInvalidCredential = errors.New("invalid credential")
)

// IdentityService maps recipient emails to accounts. Accounts are
// created lazily on first reference and persisted on every mutation;
// the in-memory index is rebuilt from the repository at startup.
type IdentityService struct {
	mu       sync.RWMutex
	byEmail  map[string]*domain.Account
	repo     domain.Repository
	mCounter *prometheus.CounterVec
}

func NewIdentityService(
	repo domain.Repository,
	mCounter *prometheus.CounterVec,
) ports.IdentityStore {
	return &IdentityService{
		byEmail:  make(map[string]*domain.Account),
		repo:     repo,
		mCounter: mCounter,
	}
}

func (is *IdentityService) Load(ctx context.Context) error {
	accs, err := is.repo.FetchAccounts(ctx)
	if err != nil {
		return fmt.Errorf("load accounts: %w", err)
	}

	is.mu.Lock()
	defer is.mu.Unlock()
	for _, a := range accs {
		is.byEmail[normalizeEmail(a.Email)] = a
	}

	return nil
}

func (is *IdentityService) Get(email string) *domain.Account {
	is.mu.RLock()
	defer is.mu.RUnlock()
	return is.byEmail[normalizeEmail(email)]
}

func (is *IdentityService) GetOrCreate(ctx context.Context, email string) (*domain.Account, error) {
	email = normalizeEmail(email)

	is.mu.Lock()
	defer is.mu.Unlock()

	if a, ok := is.byEmail[email]; ok {
		return a, nil
	}

	now := time.Now().UTC()
	a := &domain.Account{
		Email:         email,
		OwnerUserID:   domain.AnonymousUserID,
		ActivationKey: newOpaqueKey(),
		IsActivated:   false,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := is.repo.SaveAccount(ctx, a); err != nil {
		return nil, fmt.Errorf("save account %s: %w", email, err)
	}
	is.byEmail[email] = a

	is.mCounter.WithLabelValues("accounts_created_total").Inc()

	return a, nil
}

// IssueSignInCode mints a single-use code, overwriting any pending
// one, and returns it for out-of-band delivery. Only the bcrypt hash
// is kept at rest.
func (is *IdentityService) IssueSignInCode(ctx context.Context, email string) (string, error) {
	is.mu.Lock()
	defer is.mu.Unlock()

	a, ok := is.byEmail[normalizeEmail(email)]
	if !ok {
		return "", ErrAccountNotFound
	}

	code := newSignInCode()
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash sign-in code: %w", err)
	}

	a.SignInCodeHash = hash
	a.UpdatedAt = time.Now().UTC()
	if err = is.repo.SaveAccount(ctx, a); err != nil {
		return "", fmt.Errorf("save account %s: %w", a.Email, err)
	}

	is.mCounter.WithLabelValues("signin_codes_issued_total").Inc()

	return code, nil
}

// VerifySignInCode consumes the pending code exactly once. On success
// it activates the account, clears the code and returns a fresh
// sign-in key; on mismatch the stored state is left unchanged.
func (is *IdentityService) VerifySignInCode(ctx context.Context, email, code string) (string, error) {
	is.mu.Lock()
	defer is.mu.Unlock()

	a, ok := is.byEmail[normalizeEmail(email)]
	if !ok || len(a.SignInCodeHash) == 0 {
		return "", ErrInvalidCredential
	}

	if bcrypt.CompareHashAndPassword(a.SignInCodeHash, []byte(code)) != nil {
		return "", ErrInvalidCredential
	}

	a.SignInCodeHash = nil
	a.SignInKey = newOpaqueKey()
	a.IsActivated = true
	a.UpdatedAt = time.Now().UTC()
	if err := is.repo.SaveAccount(ctx, a); err != nil {
		return "", fmt.Errorf("save account %s: %w", a.Email, err)
	}

	is.mCounter.WithLabelValues("signin_codes_verified_total").Inc()

	return a.SignInKey, nil
}

func (is *IdentityService) VerifySignInKey(email, key string) bool {
	is.mu.RLock()
	defer is.mu.RUnlock()

	a, ok := is.byEmail[normalizeEmail(email)]
	if !ok {
		return false
	}

	return a.IsActivated && a.SignInKey != "" && a.SignInKey == normalizeKey(key)
}

// SignOut expires any held sign-in key.
func (is *IdentityService) SignOut(ctx context.Context, email string) error {
	is.mu.Lock()
	defer is.mu.Unlock()

	a, ok := is.byEmail[normalizeEmail(email)]
	if !ok {
		return ErrAccountNotFound
	}

	a.SignInKey = ""
	a.UpdatedAt = time.Now().UTC()
	if err := is.repo.SaveAccount(ctx, a); err != nil {
		return fmt.Errorf("save account %s: %w", a.Email, err)
	}

	return nil
}

// ResolveOwner returns the durable owner bound to the account,
// minting one via mint on the first upload. The check and the bind
// happen under one lock, so concurrent parts of a transaction always
// resolve the same owner.
func (is *IdentityService) ResolveOwner(ctx context.Context, email string, mint func(context.Context) (uuid.UUID, error)) (uuid.UUID, error) {
	is.mu.Lock()
	defer is.mu.Unlock()

	a, ok := is.byEmail[normalizeEmail(email)]
	if !ok {
		return uuid.Nil, ErrAccountNotFound
	}
	if a.HasOwner() {
		return a.OwnerUserID, nil
	}

	userID, err := mint(ctx)
	if err != nil {
		return uuid.Nil, err
	}

	a.OwnerUserID = userID
	a.UpdatedAt = time.Now().UTC()
	if err = is.repo.SaveAccount(ctx, a); err != nil {
		a.OwnerUserID = domain.AnonymousUserID
		return uuid.Nil, fmt.Errorf("save account %s: %w", a.Email, err)
	}

	return userID, nil
}

// SetOwner binds a durable user identity once resolved.
func (is *IdentityService) SetOwner(ctx context.Context, email string, userID uuid.UUID) error {
	is.mu.Lock()
	defer is.mu.Unlock()

	a, ok := is.byEmail[normalizeEmail(email)]
	if !ok {
		return ErrAccountNotFound
	}

	a.OwnerUserID = userID
	a.UpdatedAt = time.Now().UTC()
	if err := is.repo.SaveAccount(ctx, a); err != nil {
		return fmt.Errorf("save account %s: %w", a.Email, err)
	}

	return nil
}
