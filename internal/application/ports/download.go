package ports

import (
	"time"

	"filetag-api/internal/domain/shortcut"
)

type (
	ArchiveEntry struct {
		Path string
		Name string
	}

	// Download is a resolved access key: either a single file path or
	// an ordered list of archive entries, never both.
	Download struct {
		Shortcut *shortcut.Shortcut
		FilePath string
		Entries  []ArchiveEntry
	}

	BrowseItem struct {
		OriginalName  string
		Destination   string
		CreatedDate   time.Time
		ContentLength uint64
	}

	DownloadResolver interface {
		Resolve(rawKey string) (*Download, error)
		Browse(email, signInKey string) ([]BrowseItem, error)
	}
)
