package directory

import (
	"time"

	"github.com/google/uuid"
)

type (
	Directory struct {
		DirectoryID    uuid.UUID
		SessionID      string
		OwnerUserID    uuid.UUID
		PhysicalPath   string
		UsageType      string
		LimitedSize    uint64
		PublicUpload   bool
		PublicDownload bool
		IsEnabled      bool

		CreatedDate time.Time
	}
	Directories []*Directory
)
