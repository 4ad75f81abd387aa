package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filetag-api/internal/application/ports"
	"filetag-api/internal/domain/account"
	"filetag-api/internal/infrastructure/flow"
)

func TestUploadController_TicketHandler(t *testing.T) {
	r := newTestRouter()
	NewUploadController(r, testLogger(), &FakeUploadOrchestrator{}, &FakeChunkReceiver{}, &FakeIdentityStore{})

	rr := doReq(t, r, http.MethodGet, "/@ticket", nil, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	_, err := uuid.Parse(rr.Body.String())
	require.NoError(t, err)
}

func TestUploadController_HomeHandler_ChunkProbe(t *testing.T) {
	tests := []struct {
		name       string
		present    bool
		wantStatus int
	}{
		{"200 chunk present", true, http.StatusOK},
		{"204 chunk missing", false, http.StatusNoContent},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRouter()
			NewUploadController(r, testLogger(), &FakeUploadOrchestrator{}, &FakeChunkReceiver{
				HasChunkFunc: func(req *http.Request) bool { return tt.present },
			}, &FakeIdentityStore{})

			rr := doReq(t, r, http.MethodGet,
				"/alice@example.com?upload_token=x&flowIdentifier=id-1&flowChunkNumber=1", nil, nil)
			require.Equal(t, tt.wantStatus, rr.Code)
		})
	}
}

func TestUploadController_HomeHandler(t *testing.T) {
	acc := &account.Account{
		Email:         "alice@example.com",
		ActivationKey: "act-key",
		IsActivated:   true,
	}
	identity := &FakeIdentityStore{
		GetOrCreateFunc: func(ctx context.Context, email string) (*account.Account, error) {
			assert.Equal(t, "alice@example.com", email)
			return acc, nil
		},
	}

	tests := []struct {
		name      string
		cookies   map[string]string
		wantOwner bool
	}{
		{"visitor view", nil, false},
		{"wrong activation key", map[string]string{"a": "other"}, false},
		{"owner via activation cookie", map[string]string{"a": "act-key"}, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRouter()
			NewUploadController(r, testLogger(), &FakeUploadOrchestrator{}, &FakeChunkReceiver{}, identity)

			rr := doReq(t, r, http.MethodGet, "/alice@example.com", nil, tt.cookies)
			require.Equal(t, http.StatusOK, rr.Code)

			var home map[string]any
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &home))
			assert.Equal(t, "alice@example.com", home["email"])
			assert.Equal(t, true, home["isactivated"])
			assert.Equal(t, tt.wantOwner, home["isowner"])

			_, err := uuid.Parse(home["sessionid"].(string))
			require.NoError(t, err)
		})
	}
}

func TestUploadController_UploadHandler(t *testing.T) {
	tests := []struct {
		name         string
		path         string
		form         url.Values
		chunks       *FakeChunkReceiver
		orchestrator *FakeUploadOrchestrator
		wantStatus   int
	}{
		{
			name:       "400 invalid email",
			path:       "/not-an-email",
			chunks:     &FakeChunkReceiver{},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "400 invalid chunk",
			path: "/alice@example.com",
			chunks: &FakeChunkReceiver{
				SavePartFunc: func(r *http.Request) (*flow.Part, error) {
					return nil, flow.ErrInvalidChunk
				},
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "200 partial chunk acknowledged without orchestration",
			path: "/alice@example.com",
			chunks: &FakeChunkReceiver{
				SavePartFunc: func(r *http.Request) (*flow.Part, error) {
					return &flow.Part{Status: flow.StatusPartlyDone}, nil
				},
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "500 orchestrator failure",
			path: "/alice@example.com",
			form: url.Values{"sid": {"sess-1"}, "tid": {"tx-1"}, "tlen": {"2"}},
			chunks: &FakeChunkReceiver{
				SavePartFunc: func(r *http.Request) (*flow.Part, error) {
					return &flow.Part{Status: flow.StatusDone, FileName: "a.txt"}, nil
				},
			},
			orchestrator: &FakeUploadOrchestrator{
				HandleCompletedPartFunc: func(ctx context.Context, part ports.UploadPart) error {
					return errors.New("boom")
				},
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRouter()
			orch := tt.orchestrator
			if orch == nil {
				orch = &FakeUploadOrchestrator{}
			}
			NewUploadController(r, testLogger(), orch, tt.chunks, &FakeIdentityStore{})

			rr := doReq(t, r, http.MethodPost, tt.path, tt.form, nil)
			require.Equal(t, tt.wantStatus, rr.Code)
		})
	}
}

func TestUploadController_UploadHandler_CompletedPart(t *testing.T) {
	r := newTestRouter()

	var got ports.UploadPart
	NewUploadController(r, testLogger(), &FakeUploadOrchestrator{
		HandleCompletedPartFunc: func(ctx context.Context, part ports.UploadPart) error {
			got = part
			return nil
		},
	}, &FakeChunkReceiver{
		SavePartFunc: func(req *http.Request) (*flow.Part, error) {
			return &flow.Part{
				Status:       flow.StatusDone,
				FileName:     "a.txt",
				OriginalName: "A.txt",
				Identifier:   "id-1",
				TotalSize:    7,
			}, nil
		},
	}, &FakeIdentityStore{})

	form := url.Values{"sid": {"sess-1"}, "tid": {"tx-1"}, "tlen": {"3"}}
	rr := doReq(t, r, http.MethodPost, "/alice@example.com", form, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	assert.Equal(t, "sess-1", got.SessionID)
	assert.Equal(t, "tx-1", got.TransactionID)
	assert.Equal(t, 3, got.TransactionLength)
	assert.Equal(t, "alice@example.com", got.Email)
	assert.Equal(t, "a.txt", got.StoredName)
	assert.Equal(t, "A.txt", got.OriginalName)
	assert.Equal(t, "id-1", got.Identifier)
	assert.Equal(t, uint64(7), got.ContentLength)
}

func TestUploadController_UploadHandler_DefaultIDs(t *testing.T) {
	r := newTestRouter()

	var got ports.UploadPart
	NewUploadController(r, testLogger(), &FakeUploadOrchestrator{
		HandleCompletedPartFunc: func(ctx context.Context, part ports.UploadPart) error {
			got = part
			return nil
		},
	}, &FakeChunkReceiver{
		SavePartFunc: func(req *http.Request) (*flow.Part, error) {
			return &flow.Part{Status: flow.StatusDone, FileName: "a.txt"}, nil
		},
	}, &FakeIdentityStore{})

	rr := doReq(t, r, http.MethodPost, "/alice@example.com", url.Values{}, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	// missing ids are minted, a lone file is a transaction of one
	_, err := uuid.Parse(got.SessionID)
	require.NoError(t, err)
	_, err = uuid.Parse(got.TransactionID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.TransactionLength)
}
