package rest

import (
	"archive/zip"
	"bytes"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filetag-api/internal/application/ports"
	"filetag-api/internal/application/services"
	"filetag-api/internal/domain/shortcut"
	"filetag-api/internal/infrastructure/storage"
)

const testKey = "feedfacefeedfacefeedfacefeedfacefeedfacefeedfacefeedfacefeedface"

func TestDownloadController_InvalidKey(t *testing.T) {
	r := newTestRouter()
	NewDownloadController(r, testLogger(), &FakeDownloadResolver{}, &FakeFileStore{})

	rr := doReq(t, r, http.MethodGet, "/d/not-a-key", nil, nil)
	require.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "The access key is invalid", rr.Body.String())
}

func TestDownloadController_UnknownKey(t *testing.T) {
	r := newTestRouter()
	NewDownloadController(r, testLogger(), &FakeDownloadResolver{
		ResolveFunc: func(rawKey string) (*ports.Download, error) {
			return nil, services.ErrKeyNotFound
		},
	}, &FakeFileStore{})

	rr := doReq(t, r, http.MethodGet, "/d/"+testKey, nil, nil)
	require.Equal(t, http.StatusNotFound, rr.Code)
}

func TestDownloadController_ResolverFailure(t *testing.T) {
	r := newTestRouter()
	NewDownloadController(r, testLogger(), &FakeDownloadResolver{
		ResolveFunc: func(rawKey string) (*ports.Download, error) {
			return nil, errors.New("boom")
		},
	}, &FakeFileStore{})

	rr := doReq(t, r, http.MethodGet, "/d/"+testKey, nil, nil)
	require.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestDownloadController_ServesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stored.txt")
	require.NoError(t, os.WriteFile(path, []byte("file payload"), 0o644))

	r := newTestRouter()
	NewDownloadController(r, testLogger(), &FakeDownloadResolver{
		ResolveFunc: func(rawKey string) (*ports.Download, error) {
			assert.Equal(t, testKey, rawKey)
			return &ports.Download{
				Shortcut: &shortcut.Shortcut{
					ShortcutKey:  testKey,
					OriginalName: "report.txt",
					ContentType:  shortcut.ContentTypeFile,
				},
				FilePath: path,
			}, nil
		},
	}, &FakeFileStore{})

	rr := doReq(t, r, http.MethodGet, "/d/"+testKey, nil, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "file payload", rr.Body.String())
	assert.Contains(t, rr.Header().Get("Content-Disposition"), "report.txt")
	assert.Equal(t, "application/octet-stream", rr.Header().Get("Content-Type"))
}

func TestDownloadController_StreamsArchive(t *testing.T) {
	dir := t.TempDir()
	for name, content := range map[string]string{"a.txt": "first", "b.txt": "second"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}

	disk := storage.NewDisk(testLogger())
	r := newTestRouter()
	NewDownloadController(r, testLogger(), &FakeDownloadResolver{
		ResolveFunc: func(rawKey string) (*ports.Download, error) {
			return &ports.Download{
				Shortcut: &shortcut.Shortcut{
					ShortcutKey:  testKey,
					OriginalName: "bundle.zip",
					ContentType:  shortcut.ContentTypeArchive,
				},
				Entries: []ports.ArchiveEntry{
					{Path: filepath.Join(dir, "a.txt"), Name: "a.txt"},
					{Path: filepath.Join(dir, "b.txt"), Name: "b.txt"},
				},
			}, nil
		},
	}, disk)

	rr := doReq(t, r, http.MethodGet, "/d/"+testKey, nil, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/zip", rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Header().Get("Content-Disposition"), "bundle.zip")

	zr, err := zip.NewReader(bytes.NewReader(rr.Body.Bytes()), int64(rr.Body.Len()))
	require.NoError(t, err)
	require.Len(t, zr.File, 2)

	names := []string{zr.File[0].Name, zr.File[1].Name}
	assert.ElementsMatch(t, []string{"a.txt", "b.txt"}, names)

	rc, err := zr.File[0].Open()
	require.NoError(t, err)
	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.True(t, strings.Contains("firstsecond", string(got)))
}
