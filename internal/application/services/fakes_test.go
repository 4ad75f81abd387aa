package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"filetag-api/internal/application/ports"
	"filetag-api/internal/domain/account"
	"filetag-api/internal/domain/directory"
	"filetag-api/internal/domain/shortcut"
	"filetag-api/internal/domain/user"
	"filetag-api/internal/infrastructure/flow"
	"filetag-api/internal/infrastructure/mq"
	"filetag-api/internal/infrastructure/storage"
)

func newTestCounter() *prometheus.CounterVec {
	return prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "test_counters"},
		[]string{"result"},
	)
}

type FakeAccountRepo struct {
	FetchAccountsFunc func(ctx context.Context) (account.Accounts, error)
	SaveAccountFunc   func(ctx context.Context, a *account.Account) error

	mu    sync.Mutex
	Saved []*account.Account
}

func (f *FakeAccountRepo) FetchAccounts(ctx context.Context) (account.Accounts, error) {
	if f.FetchAccountsFunc == nil {
		return nil, nil
	}
	return f.FetchAccountsFunc(ctx)
}
func (f *FakeAccountRepo) SaveAccount(ctx context.Context, a *account.Account) error {
	if f.SaveAccountFunc != nil {
		return f.SaveAccountFunc(ctx, a)
	}
	f.mu.Lock()
	f.Saved = append(f.Saved, a)
	f.mu.Unlock()
	return nil
}

type FakeUserRepo struct {
	FetchUsersFunc func(ctx context.Context) (user.Users, error)
	SaveUserFunc   func(ctx context.Context, u *user.User) error
}

func (f *FakeUserRepo) FetchUsers(ctx context.Context) (user.Users, error) {
	if f.FetchUsersFunc == nil {
		return nil, nil
	}
	return f.FetchUsersFunc(ctx)
}
func (f *FakeUserRepo) SaveUser(ctx context.Context, u *user.User) error {
	if f.SaveUserFunc == nil {
		return nil
	}
	return f.SaveUserFunc(ctx, u)
}

type FakeDirectoryRepo struct {
	FetchDirectoriesFunc func(ctx context.Context) (directory.Directories, error)
	SaveDirectoryFunc    func(ctx context.Context, d *directory.Directory) error
}

func (f *FakeDirectoryRepo) FetchDirectories(ctx context.Context) (directory.Directories, error) {
	if f.FetchDirectoriesFunc == nil {
		return nil, nil
	}
	return f.FetchDirectoriesFunc(ctx)
}
func (f *FakeDirectoryRepo) SaveDirectory(ctx context.Context, d *directory.Directory) error {
	if f.SaveDirectoryFunc == nil {
		return nil
	}
	return f.SaveDirectoryFunc(ctx, d)
}

type FakeShortcutRepo struct {
	FetchShortcutsFunc func(ctx context.Context) (shortcut.Shortcuts, error)
	SaveShortcutFunc   func(ctx context.Context, sc *shortcut.Shortcut) error
}

func (f *FakeShortcutRepo) FetchShortcuts(ctx context.Context) (shortcut.Shortcuts, error) {
	if f.FetchShortcutsFunc == nil {
		return nil, nil
	}
	return f.FetchShortcutsFunc(ctx)
}
func (f *FakeShortcutRepo) SaveShortcut(ctx context.Context, sc *shortcut.Shortcut) error {
	if f.SaveShortcutFunc == nil {
		return nil
	}
	return f.SaveShortcutFunc(ctx, sc)
}

// FakeFileStore keeps created files in memory and treats every
// directory as present.
type FakeFileStore struct {
	EnsureDirFunc func(path string) error

	mu      sync.Mutex
	Written map[string]*bytes.Buffer
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

func (f *FakeFileStore) EnsureDir(path string) error {
	if f.EnsureDirFunc == nil {
		return nil
	}
	return f.EnsureDirFunc(path)
}
func (f *FakeFileStore) CreateFile(path string) (io.WriteCloser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Written == nil {
		f.Written = make(map[string]*bytes.Buffer)
	}
	buf := &bytes.Buffer{}
	f.Written[path] = buf
	return nopWriteCloser{buf}, nil
}
func (f *FakeFileStore) ListDir(path string) ([]string, error) {
	return nil, nil
}
func (f *FakeFileStore) StreamZip(w io.Writer, entries []storage.ZipEntry) error {
	return nil
}

// FakeChunkReceiver hands back canned content per identifier.
type FakeChunkReceiver struct {
	Content map[string]string

	mu      sync.Mutex
	Cleaned []string
}

func (f *FakeChunkReceiver) SavePart(r *http.Request) (*flow.Part, error) {
	return nil, errors.New("not used")
}
func (f *FakeChunkReceiver) HasChunk(r *http.Request) bool { return false }
func (f *FakeChunkReceiver) Assemble(identifier string, w io.Writer) error {
	c, ok := f.Content[identifier]
	if !ok {
		return errors.New("unknown identifier")
	}
	_, err := io.WriteString(w, c)
	return err
}
func (f *FakeChunkReceiver) Clean(identifier string) {
	f.mu.Lock()
	f.Cleaned = append(f.Cleaned, identifier)
	f.mu.Unlock()
}

// FakeNotifier records dispatched notifications.
type FakeNotifier struct {
	mu        sync.Mutex
	Completed []struct {
		Email string
		Files []mq.FileLink
	}
	Codes []string
}

func (f *FakeNotifier) UploadCompleted(acc *account.Account, files []mq.FileLink) {
	f.mu.Lock()
	f.Completed = append(f.Completed, struct {
		Email string
		Files []mq.FileLink
	}{acc.Email, files})
	f.mu.Unlock()
}
func (f *FakeNotifier) SignInCode(acc *account.Account, code string) {
	f.mu.Lock()
	f.Codes = append(f.Codes, code)
	f.mu.Unlock()
}

var _ ports.FileStore = (*FakeFileStore)(nil)
var _ ports.ChunkReceiver = (*FakeChunkReceiver)(nil)
var _ ports.Notifier = (*FakeNotifier)(nil)
