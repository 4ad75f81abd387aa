package shortcut

import (
	"time"

	"github.com/google/uuid"
)

type (
	Shortcut struct {
		ShortcutKey   string
		OwnerUserID   uuid.UUID
		OriginalName  string
		Destination   string
		ContentType   string
		ContentLength uint64
		SessionID     string

		CreatedDate time.Time
	}
	Shortcuts []*Shortcut
)
