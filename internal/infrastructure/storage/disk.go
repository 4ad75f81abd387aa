package storage

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"go.uber.org/zap"
)

type (
	// ZipEntry names one member of a streamed archive.
	ZipEntry struct {
		Path string
		Name string
	}

	// Disk serves physical storage under local directories.
	Disk struct {
		logger *zap.Logger
	}
)

func NewDisk(logger *zap.Logger) *Disk {
	return &Disk{logger: logger}
}

// EnsureRoot prepares a storage root, parents included. Startup only.
func (d *Disk) EnsureRoot(path string) error {
	return os.MkdirAll(path, 0o755)
}

// EnsureDir creates a single directory level. "Already exists" is
// success; anything else is the caller's failure.
func (d *Disk) EnsureDir(path string) error {
	if err := os.Mkdir(path, 0o755); err != nil && !errors.Is(err, fs.ErrExist) {
		return err
	}
	return nil
}

func (d *Disk) CreateFile(path string) (io.WriteCloser, error) {
	return os.Create(path)
}

func (d *Disk) ListDir(path string) ([]string, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}

	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name()
	}
	return names, nil
}

// StreamZip writes the entries as a zip archive without buffering
// whole files in memory.
func (d *Disk) StreamZip(w io.Writer, entries []ZipEntry) error {
	zw := zip.NewWriter(w)
	for _, e := range entries {
		f, err := os.Open(e.Path)
		if err != nil {
			_ = zw.Close()
			return fmt.Errorf("open archive member %s: %w", e.Path, err)
		}

		member, err := zw.Create(e.Name)
		if err == nil {
			_, err = io.Copy(member, f)
		}
		_ = f.Close()
		if err != nil {
			_ = zw.Close()
			return fmt.Errorf("write archive member %s: %w", e.Name, err)
		}
	}

	return zw.Close()
}
