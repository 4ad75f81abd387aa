package shortcut

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	ContentTypeFile    = "file"
	ContentTypeArchive = "archive"

	// DestinationDelimiter joins member paths inside an archive
	// shortcut's destination.
	DestinationDelimiter = ";"
)

type (
	// Shortcut is an opaque-key-addressed pointer to stored content.
	// A file shortcut holds exactly one destination path; an archive
	// shortcut holds two or more joined by DestinationDelimiter.
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

// Destinations splits the destination into its member physical paths.
func (s *Shortcut) Destinations() []string {
	if s.Destination == "" {
		return nil
	}
	return strings.Split(s.Destination, DestinationDelimiter)
}

func (s *Shortcut) IsFile() bool    { return s.ContentType == ContentTypeFile }
func (s *Shortcut) IsArchive() bool { return s.ContentType == ContentTypeArchive }
