package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"filetag-api/internal/application/ports"
	"filetag-api/internal/infrastructure/flow"
	"filetag-api/internal/interface/api/rest/dto/browse"
	"filetag-api/internal/interface/api/rest/validator"
)

type UploadController struct {
	logger   *zap.Logger
	uploads  ports.UploadOrchestrator
	chunks   ports.ChunkReceiver
	identity ports.IdentityStore
}

func NewUploadController(
	r *gin.Engine,
	logger *zap.Logger,
	uploads ports.UploadOrchestrator,
	chunks ports.ChunkReceiver,
	identity ports.IdentityStore,
) *UploadController {
	uc := &UploadController{
		logger:   logger,
		uploads:  uploads,
		chunks:   chunks,
		identity: identity,
	}

	r.GET(RouteTicket, uc.TicketHandler)
	r.GET(RouteHome, uc.HomeHandler)
	r.POST(RouteHome, uc.UploadHandler)
	r.OPTIONS(RouteHome, uc.OptionsHandler)

	return uc
}

// TicketHandler hands out a fresh session id for an upload page.
func (uc *UploadController) TicketHandler(c *gin.Context) {
	c.String(http.StatusOK, uuid.NewString())
}

func (uc *UploadController) OptionsHandler(c *gin.Context) {
	c.Status(http.StatusOK)
}

// HomeHandler doubles as the flow.js test-chunk probe (upload_token
// query present) and the recipient home lookup.
func (uc *UploadController) HomeHandler(c *gin.Context) {
	if c.Query("upload_token") != "" {
		if uc.chunks.HasChunk(c.Request) {
			c.Status(http.StatusOK)
		} else {
			c.Status(http.StatusNoContent)
		}
		return
	}

	ok, email := validator.IsEmail(c.Param("email"))
	if !ok {
		c.String(http.StatusBadRequest, "invalid email")
		return
	}

	acc, err := uc.identity.GetOrCreate(c.Request.Context(), email)
	if err != nil {
		c.String(http.StatusInternalServerError, "Failed")
		uc.logger.Error("GetOrCreate() error", zap.Error(err))
		return
	}

	aKey, _ := c.Cookie(activationCookie)

	c.JSON(http.StatusOK, browse.Home{
		Email:       acc.Email,
		SessionID:   uuid.NewString(),
		IsActivated: acc.IsActivated,
		IsOwner:     aKey != "" && aKey == acc.ActivationKey,
	})
}

// UploadHandler accepts one chunk. A part still in flight is
// acknowledged immediately; a completed part runs the full upload
// protocol.
func (uc *UploadController) UploadHandler(c *gin.Context) {
	ok, email := validator.IsEmail(c.Param("email"))
	if !ok {
		c.String(http.StatusBadRequest, "invalid email")
		return
	}

	part, err := uc.chunks.SavePart(c.Request)
	if err != nil {
		if errors.Is(err, flow.ErrInvalidChunk) {
			c.String(http.StatusBadRequest, "invalid chunk")
			return
		}
		c.Status(http.StatusInternalServerError)
		uc.logger.Error("SavePart() error", zap.Error(err))
		return
	}

	if part.Status == flow.StatusPartlyDone {
		c.Status(http.StatusOK)
		return
	}

	sid := c.PostForm("sid")
	if sid == "" {
		sid = uuid.NewString()
	}
	tid := c.PostForm("tid")
	if tid == "" {
		tid = uuid.NewString()
	}

	err = uc.uploads.HandleCompletedPart(c.Request.Context(), ports.UploadPart{
		SessionID:         sid,
		TransactionID:     tid,
		TransactionLength: validator.TransactionLength(c.PostForm("tlen")),
		Email:             email,
		StoredName:        part.FileName,
		OriginalName:      part.OriginalName,
		Identifier:        part.Identifier,
		ContentLength:     part.TotalSize,
	})
	if err != nil {
		c.Status(http.StatusInternalServerError)
		uc.logger.Error("HandleCompletedPart() error", zap.Error(err))
		return
	}

	c.Status(http.StatusOK)
}
