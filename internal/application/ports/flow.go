package ports

import (
	"io"
	"net/http"

	"filetag-api/internal/infrastructure/flow"
)

// ChunkReceiver is the chunked-upload collaborator: it lands chunks in
// temporary storage, reports when a file's last chunk arrived and
// streams the assembled bytes into a destination writer.
type ChunkReceiver interface {
	SavePart(r *http.Request) (*flow.Part, error)
	HasChunk(r *http.Request) bool
	Assemble(identifier string, w io.Writer) error
	Clean(identifier string)
}
