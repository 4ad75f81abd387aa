package ports

import (
	"context"
)

type (
	// UploadPart describes one fully-landed file part as reported by
	// the chunked-upload collaborator plus the request-scoped ids.
	UploadPart struct {
		SessionID         string
		TransactionID     string
		TransactionLength int
		Email             string
		StoredName        string
		OriginalName      string
		Identifier        string
		ContentLength     uint64
	}

	// UploadOrchestrator runs the per-part protocol: resolve account,
	// owner, directory and shortcut, advance the transaction and, on
	// close, bundle and notify.
	UploadOrchestrator interface {
		HandleCompletedPart(ctx context.Context, part UploadPart) error
	}
)
