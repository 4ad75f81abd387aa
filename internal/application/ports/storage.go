package ports

import (
	"io"

	"filetag-api/internal/infrastructure/storage"
)

type FileStore interface {
	EnsureDir(path string) error
	CreateFile(path string) (io.WriteCloser, error)
	ListDir(path string) ([]string, error)
	StreamZip(w io.Writer, entries []storage.ZipEntry) error
}
