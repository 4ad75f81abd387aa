package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"filetag-api/internal/application/ports"
	"filetag-api/internal/application/services"
	"filetag-api/internal/interface/api/rest/dto/browse"
	"filetag-api/internal/interface/api/rest/validator"
)

const (
	// signInCookie carries the recipient's browse credential, scoped
	// to the email path prefix.
	signInCookie     = "k"
	signInCookieAge  = 7 * 24 * 60 * 60
	activationCookie = "a"
)

type AccountController struct {
	logger    *zap.Logger
	identity  ports.IdentityStore
	downloads ports.DownloadResolver
	notifier  ports.Notifier
}

func NewAccountController(
	r *gin.Engine,
	logger *zap.Logger,
	identity ports.IdentityStore,
	downloads ports.DownloadResolver,
	notifier ports.Notifier,
) *AccountController {
	ac := &AccountController{
		logger:    logger,
		identity:  identity,
		downloads: downloads,
		notifier:  notifier,
	}

	r.GET(RouteBrowse, ac.BrowseHandler)
	r.GET(RouteSignOut, ac.SignOutHandler)
	r.GET(RouteIssueCode, ac.IssueSignInCodeHandler)
	r.POST(RouteVerifyCode, ac.VerifySignInCodeHandler)

	return ac
}

// BrowseHandler lists the recipient's files behind the sign-in key
// cookie. Failure bodies never reveal whether the account exists.
func (ac *AccountController) BrowseHandler(c *gin.Context) {
	ok, email := validator.IsEmail(c.Param("email"))
	if !ok {
		c.String(http.StatusBadRequest, "invalid email")
		return
	}

	key, _ := c.Cookie(signInCookie)

	items, err := ac.downloads.Browse(email, key)
	if err != nil {
		if errors.Is(err, services.ErrNoAccess) {
			c.String(http.StatusOK, "no access")
			return
		}
		c.String(http.StatusInternalServerError, "Failed")
		ac.logger.Error("Browse() error", zap.Error(err))
		return
	}
	if len(items) == 0 {
		c.String(http.StatusOK, "no asset")
		return
	}

	c.JSON(http.StatusOK, browse.ToResponseItems(items))
}

func (ac *AccountController) SignOutHandler(c *gin.Context) {
	ok, email := validator.IsEmail(c.Param("email"))
	if !ok {
		c.String(http.StatusBadRequest, "invalid email")
		return
	}

	if err := ac.identity.SignOut(c.Request.Context(), email); err != nil &&
		!errors.Is(err, services.ErrAccountNotFound) {
		c.String(http.StatusInternalServerError, "Failed")
		ac.logger.Error("SignOut() error", zap.Error(err))
		return
	}

	c.SetCookie(signInCookie, "", -1, "/"+email, "", false, true)
	c.String(http.StatusOK, "OK")
}

// IssueSignInCodeHandler mints a single-use code and hands it to the
// mail collaborator for out-of-band delivery.
func (ac *AccountController) IssueSignInCodeHandler(c *gin.Context) {
	ok, email := validator.IsEmail(c.Param("email"))
	if !ok {
		c.String(http.StatusBadRequest, "invalid email")
		return
	}

	code, err := ac.identity.IssueSignInCode(c.Request.Context(), email)
	if err != nil {
		c.String(http.StatusInternalServerError, "Failed")
		if !errors.Is(err, services.ErrAccountNotFound) {
			ac.logger.Error("IssueSignInCode() error", zap.Error(err))
		}
		return
	}

	if acc := ac.identity.Get(email); acc != nil {
		ac.notifier.SignInCode(acc, code)
	}

	c.String(http.StatusOK, "OK")
}

// VerifySignInCodeHandler consumes the pending code; on success the
// fresh sign-in key travels back as a path-scoped cookie.
func (ac *AccountController) VerifySignInCodeHandler(c *gin.Context) {
	ok, email := validator.IsEmail(c.Param("email"))
	if !ok {
		c.String(http.StatusBadRequest, "invalid email")
		return
	}

	code := c.PostForm("s")
	if !validator.IsSignInCode(code) {
		c.String(http.StatusOK, "Failed")
		return
	}

	key, err := ac.identity.VerifySignInCode(c.Request.Context(), email, code)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredential) {
			c.String(http.StatusOK, "Failed")
			return
		}
		c.String(http.StatusInternalServerError, "Failed")
		ac.logger.Error("VerifySignInCode() error", zap.Error(err))
		return
	}

	c.SetCookie(signInCookie, key, signInCookieAge, "/"+email, "", false, true)
	c.String(http.StatusOK, "OK")
}
