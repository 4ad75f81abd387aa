// Package flow receives flow.js-style chunked uploads: chunks land in
// a temporary directory and are assembled into a destination writer
// once the last one arrives. The upload core only sees the completion
// callback shape (status, stored name, original name, identifier).
package flow

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"sync"
)

const maxFormMemory = 32 << 20

type Status string

const (
	StatusDone       Status = "done"
	StatusPartlyDone Status = "partly_done"
)

var (
	ErrInvalidChunk = errors.New("invalid chunk request")

	identifierRe = regexp.MustCompile(`[^A-Za-z0-9_-]`)
	fileNameRe   = regexp.MustCompile(`[^A-Za-z0-9._-]`)
)

type (
	// Part reports one processed chunk request. Status is done only
	// when every chunk of the file is present.
	Part struct {
		Status       Status
		FileName     string
		OriginalName string
		Identifier   string
		TotalSize    uint64
	}

	Receiver struct {
		dir string
		mu  sync.Mutex
	}
)

func New(dir string) *Receiver {
	return &Receiver{dir: dir}
}

// SavePart lands the chunk carried by a multipart POST and reports
// whether the file is now complete.
func (r *Receiver) SavePart(req *http.Request) (*Part, error) {
	if err := req.ParseMultipartForm(maxFormMemory); err != nil {
		return nil, fmt.Errorf("parse multipart form: %w", err)
	}

	chunkNumber, _ := strconv.Atoi(req.FormValue("flowChunkNumber"))
	totalChunks, _ := strconv.Atoi(req.FormValue("flowTotalChunks"))
	totalSize, _ := strconv.ParseUint(req.FormValue("flowTotalSize"), 10, 64)
	identifier := cleanIdentifier(req.FormValue("flowIdentifier"))
	originalName := req.FormValue("flowFilename")

	if chunkNumber < 1 || totalChunks < 1 || identifier == "" || originalName == "" {
		return nil, ErrInvalidChunk
	}

	src, _, err := req.FormFile("file")
	if err != nil {
		return nil, fmt.Errorf("chunk file part: %w", err)
	}
	defer src.Close()

	r.mu.Lock()
	defer r.mu.Unlock()

	dst, err := os.Create(r.chunkPath(identifier, chunkNumber))
	if err != nil {
		return nil, fmt.Errorf("store chunk %d of %s: %w", chunkNumber, identifier, err)
	}
	if _, err = io.Copy(dst, src); err != nil {
		_ = dst.Close()
		return nil, fmt.Errorf("store chunk %d of %s: %w", chunkNumber, identifier, err)
	}
	if err = dst.Close(); err != nil {
		return nil, err
	}

	part := &Part{
		Status:       StatusDone,
		FileName:     cleanFileName(originalName),
		OriginalName: originalName,
		Identifier:   identifier,
		TotalSize:    totalSize,
	}
	for i := 1; i <= totalChunks; i++ {
		if _, err = os.Stat(r.chunkPath(identifier, i)); err != nil {
			part.Status = StatusPartlyDone
			break
		}
	}

	return part, nil
}

// HasChunk answers the flow.js test-chunk probe from query params.
func (r *Receiver) HasChunk(req *http.Request) bool {
	chunkNumber, _ := strconv.Atoi(req.URL.Query().Get("flowChunkNumber"))
	identifier := cleanIdentifier(req.URL.Query().Get("flowIdentifier"))
	if chunkNumber < 1 || identifier == "" {
		return false
	}

	_, err := os.Stat(r.chunkPath(identifier, chunkNumber))
	return err == nil
}

// Assemble streams the chunks of an identifier, in order, into w.
func (r *Receiver) Assemble(identifier string, w io.Writer) error {
	identifier = cleanIdentifier(identifier)

	for i := 1; ; i++ {
		f, err := os.Open(r.chunkPath(identifier, i))
		if err != nil {
			if errors.Is(err, os.ErrNotExist) && i > 1 {
				return nil
			}
			return fmt.Errorf("open chunk %d of %s: %w", i, identifier, err)
		}
		_, err = io.Copy(w, f)
		_ = f.Close()
		if err != nil {
			return fmt.Errorf("read chunk %d of %s: %w", i, identifier, err)
		}
	}
}

// Clean drops every chunk of an identifier once the file is persisted.
func (r *Receiver) Clean(identifier string) {
	identifier = cleanIdentifier(identifier)

	for i := 1; ; i++ {
		if err := os.Remove(r.chunkPath(identifier, i)); err != nil {
			return
		}
	}
}

func (r *Receiver) chunkPath(identifier string, chunkNumber int) string {
	return filepath.Join(r.dir, fmt.Sprintf("flow-%s.%d", identifier, chunkNumber))
}

func cleanIdentifier(s string) string {
	return identifierRe.ReplaceAllString(s, "")
}

func cleanFileName(s string) string {
	s = filepath.Base(s)
	return fileNameRe.ReplaceAllString(s, "_")
}
