package rest

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"filetag-api/internal/application/ports"
	"filetag-api/internal/application/services"
	"filetag-api/internal/infrastructure/storage"
	"filetag-api/internal/interface/api/rest/validator"
)

type DownloadController struct {
	logger    *zap.Logger
	downloads ports.DownloadResolver
	files     ports.FileStore
}

func NewDownloadController(
	r *gin.Engine,
	logger *zap.Logger,
	downloads ports.DownloadResolver,
	files ports.FileStore,
) *DownloadController {
	dc := &DownloadController{
		logger:    logger,
		downloads: downloads,
		files:     files,
	}

	r.GET(RouteDownload, dc.DownloadHandler)

	return dc
}

// DownloadHandler serves the asset behind an access key: a plain file
// as an attachment, a multi-file drop as a zip streamed on the fly.
func (dc *DownloadController) DownloadHandler(c *gin.Context) {
	rawKey := c.Param("key")
	if !validator.IsAccessKey(rawKey) {
		c.String(http.StatusInternalServerError, "The access key is invalid")
		return
	}

	dl, err := dc.downloads.Resolve(rawKey)
	if err != nil {
		if errors.Is(err, services.ErrKeyNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusInternalServerError)
		dc.logger.Error("Resolve() error", zap.Error(err))
		return
	}

	if dl.Shortcut.IsFile() {
		c.Header("Content-Type", "application/octet-stream")
		c.Header("Content-Transfer-Encoding", "binary")
		c.FileAttachment(dl.FilePath, dl.Shortcut.OriginalName)
		return
	}

	entries := make([]storage.ZipEntry, len(dl.Entries))
	for i, e := range dl.Entries {
		entries[i] = storage.ZipEntry{Path: e.Path, Name: e.Name}
	}

	c.Header("Content-Type", "application/zip")
	c.Header("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", dl.Shortcut.OriginalName))
	c.Status(http.StatusOK)

	if err := dc.files.StreamZip(c.Writer, entries); err != nil {
		// Headers are already on the wire, nothing left but to log.
		dc.logger.Error("StreamZip() error", zap.Error(err))
	}
}
