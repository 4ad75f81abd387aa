package rest

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"filetag-api/internal/application/ports"
	"filetag-api/internal/domain/account"
	"filetag-api/internal/infrastructure/flow"
	"filetag-api/internal/infrastructure/mq"
	"filetag-api/internal/infrastructure/storage"
)

type FakeIdentityStore struct {
	GetFunc              func(email string) *account.Account
	GetOrCreateFunc      func(ctx context.Context, email string) (*account.Account, error)
	IssueSignInCodeFunc  func(ctx context.Context, email string) (string, error)
	VerifySignInCodeFunc func(ctx context.Context, email, code string) (string, error)
	VerifySignInKeyFunc  func(email, key string) bool
	SignOutFunc          func(ctx context.Context, email string) error
	ResolveOwnerFunc     func(ctx context.Context, email string, mint func(context.Context) (uuid.UUID, error)) (uuid.UUID, error)
	SetOwnerFunc         func(ctx context.Context, email string, userID uuid.UUID) error
}

func (f *FakeIdentityStore) Load(ctx context.Context) error { return nil }
func (f *FakeIdentityStore) Get(email string) *account.Account {
	if f.GetFunc == nil {
		return nil
	}
	return f.GetFunc(email)
}
func (f *FakeIdentityStore) GetOrCreate(ctx context.Context, email string) (*account.Account, error) {
	if f.GetOrCreateFunc == nil {
		return nil, errors.New("not used")
	}
	return f.GetOrCreateFunc(ctx, email)
}
func (f *FakeIdentityStore) IssueSignInCode(ctx context.Context, email string) (string, error) {
	if f.IssueSignInCodeFunc == nil {
		return "", errors.New("not used")
	}
	return f.IssueSignInCodeFunc(ctx, email)
}
func (f *FakeIdentityStore) VerifySignInCode(ctx context.Context, email, code string) (string, error) {
	if f.VerifySignInCodeFunc == nil {
		return "", errors.New("not used")
	}
	return f.VerifySignInCodeFunc(ctx, email, code)
}
func (f *FakeIdentityStore) VerifySignInKey(email, key string) bool {
	if f.VerifySignInKeyFunc == nil {
		return false
	}
	return f.VerifySignInKeyFunc(email, key)
}
func (f *FakeIdentityStore) SignOut(ctx context.Context, email string) error {
	if f.SignOutFunc == nil {
		return errors.New("not used")
	}
	return f.SignOutFunc(ctx, email)
}
func (f *FakeIdentityStore) ResolveOwner(ctx context.Context, email string, mint func(context.Context) (uuid.UUID, error)) (uuid.UUID, error) {
	if f.ResolveOwnerFunc == nil {
		return uuid.Nil, errors.New("not used")
	}
	return f.ResolveOwnerFunc(ctx, email, mint)
}
func (f *FakeIdentityStore) SetOwner(ctx context.Context, email string, userID uuid.UUID) error {
	if f.SetOwnerFunc == nil {
		return errors.New("not used")
	}
	return f.SetOwnerFunc(ctx, email, userID)
}

type FakeDownloadResolver struct {
	ResolveFunc func(rawKey string) (*ports.Download, error)
	BrowseFunc  func(email, signInKey string) ([]ports.BrowseItem, error)
}

func (f *FakeDownloadResolver) Resolve(rawKey string) (*ports.Download, error) {
	if f.ResolveFunc == nil {
		return nil, errors.New("not used")
	}
	return f.ResolveFunc(rawKey)
}
func (f *FakeDownloadResolver) Browse(email, signInKey string) ([]ports.BrowseItem, error) {
	if f.BrowseFunc == nil {
		return nil, errors.New("not used")
	}
	return f.BrowseFunc(email, signInKey)
}

type FakeNotifier struct {
	UploadCompletedFunc func(acc *account.Account, files []mq.FileLink)
	SignInCodeFunc      func(acc *account.Account, code string)
}

func (f *FakeNotifier) UploadCompleted(acc *account.Account, files []mq.FileLink) {
	if f.UploadCompletedFunc != nil {
		f.UploadCompletedFunc(acc, files)
	}
}
func (f *FakeNotifier) SignInCode(acc *account.Account, code string) {
	if f.SignInCodeFunc != nil {
		f.SignInCodeFunc(acc, code)
	}
}

type FakeUploadOrchestrator struct {
	HandleCompletedPartFunc func(ctx context.Context, part ports.UploadPart) error
}

func (f *FakeUploadOrchestrator) HandleCompletedPart(ctx context.Context, part ports.UploadPart) error {
	if f.HandleCompletedPartFunc == nil {
		return errors.New("not used")
	}
	return f.HandleCompletedPartFunc(ctx, part)
}

type FakeChunkReceiver struct {
	SavePartFunc func(r *http.Request) (*flow.Part, error)
	HasChunkFunc func(r *http.Request) bool
}

func (f *FakeChunkReceiver) SavePart(r *http.Request) (*flow.Part, error) {
	if f.SavePartFunc == nil {
		return nil, errors.New("not used")
	}
	return f.SavePartFunc(r)
}
func (f *FakeChunkReceiver) HasChunk(r *http.Request) bool {
	if f.HasChunkFunc == nil {
		return false
	}
	return f.HasChunkFunc(r)
}
func (f *FakeChunkReceiver) Assemble(identifier string, w io.Writer) error { return nil }
func (f *FakeChunkReceiver) Clean(identifier string)                       {}

type FakeFileStore struct {
	StreamZipFunc func(w io.Writer, entries []storage.ZipEntry) error
}

func (f *FakeFileStore) EnsureDir(path string) error                 { return nil }
func (f *FakeFileStore) CreateFile(path string) (io.WriteCloser, error) {
	return nil, errors.New("not used")
}
func (f *FakeFileStore) ListDir(path string) ([]string, error) { return nil, nil }
func (f *FakeFileStore) StreamZip(w io.Writer, entries []storage.ZipEntry) error {
	if f.StreamZipFunc == nil {
		return errors.New("not used")
	}
	return f.StreamZipFunc(w, entries)
}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func doReq(t *testing.T, r *gin.Engine, method, path string, form url.Values, cookies map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequest(method, path, body)
	require.NoError(t, err)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for k, v := range cookies {
		req.AddCookie(&http.Cookie{Name: k, Value: v})
	}

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func testLogger() *zap.Logger { return zap.NewNop() }
