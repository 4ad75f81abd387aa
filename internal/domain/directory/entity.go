package directory

import (
	"time"

	"github.com/google/uuid"
)

const UsageTypeMail = "mail"

type (
	// Directory is a session-scoped physical storage namespace. The
	// physical path is derived from the directory id once at creation
	// and never changes.
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
