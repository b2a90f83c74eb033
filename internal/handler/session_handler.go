package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"repono/internal/domain"
	"repono/internal/middleware"
	"repono/internal/service"
)

// SessionCookieName is the opaque session cookie set alongside the tokens.
const SessionCookieName = "_repono_session"

// SessionHandler handles the session/token endpoints.
type SessionHandler struct {
	authService service.AuthService
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(authService service.AuthService) *SessionHandler {
	return &SessionHandler{authService: authService}
}

// Login handles POST /api/v1/tenant/:tenant_id/users/login
func (h *SessionHandler) Login(c *gin.Context) {
	account, err := middleware.GetAccount(c)
	if err != nil {
		HandleError(c, err)
		return
	}

	var input service.LoginInput
	if err := c.ShouldBind(&input); err != nil {
		RespondUnauthorized(c, "Invalid email or password.")
		return
	}

	user, pair, err := h.authService.Login(c.Request.Context(), account, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	h.setSessionCookies(c, account, pair)
	c.JSON(http.StatusOK, user)
}

// Refresh handles POST /api/v1/tenant/:tenant_id/users/refresh
// The refresh token arrives as a bearer token; both cookies are rotated.
func (h *SessionHandler) Refresh(c *gin.Context) {
	account, err := middleware.GetAccount(c)
	if err != nil {
		HandleError(c, err)
		return
	}

	user, pair, err := h.authService.Refresh(c.Request.Context(), account, middleware.BearerToken(c))
	if err != nil {
		h.clearSessionCookies(c, account)
		HandleError(c, err)
		return
	}

	h.setSessionCookies(c, account, pair)
	c.JSON(http.StatusOK, user)
}

// Current handles POST /api/v1/tenant/:tenant_id/users/current
func (h *SessionHandler) Current(c *gin.Context) {
	account, err := middleware.GetAccount(c)
	if err != nil {
		HandleError(c, err)
		return
	}

	user, err := h.authService.Current(c.Request.Context(), account, middleware.BearerToken(c))
	if err != nil {
		// A defective session renders as blank user fields, not an envelope.
		c.JSON(http.StatusUnauthorized, service.BlankSessionUser())
		return
	}

	c.JSON(http.StatusOK, user)
}

// Logout handles DELETE /api/v1/tenant/:tenant_id/users/log_out
func (h *SessionHandler) Logout(c *gin.Context) {
	account, err := middleware.GetAccount(c)
	if err != nil {
		HandleError(c, err)
		return
	}

	h.clearSessionCookies(c, account)
	c.JSON(http.StatusOK, gin.H{"message": "Successfully logged out"})
}

func (h *SessionHandler) setSessionCookies(c *gin.Context, account *domain.Account, pair *service.TokenPair) {
	cookieDomain := sessionCookieDomain(account, c.Request.Host)
	c.SetCookie(middleware.AccessCookieName, pair.AccessToken,
		int(time.Until(pair.AccessExpiry).Seconds()), "/", cookieDomain, false, true)
	c.SetCookie(middleware.RefreshCookieName, pair.RefreshToken,
		int(time.Until(pair.RefreshExpiry).Seconds()), "/", cookieDomain, false, true)
	c.SetCookie(SessionCookieName, uuid.New().String(), 0, "/", cookieDomain, false, true)
}

func (h *SessionHandler) clearSessionCookies(c *gin.Context, account *domain.Account) {
	cookieDomain := sessionCookieDomain(account, c.Request.Host)
	c.SetCookie(middleware.AccessCookieName, "", -1, "/", cookieDomain, false, true)
	c.SetCookie(middleware.RefreshCookieName, "", -1, "/", cookieDomain, false, true)
	c.SetCookie(SessionCookieName, "", -1, "/", cookieDomain, false, true)
}

// sessionCookieDomain computes the cookie domain: the account's configured
// front-end domain when present, else the request's own host, dot-prefixed
// so the cookie is shared across subdomains.
func sessionCookieDomain(account *domain.Account, requestHost string) string {
	host := requestHost
	if account.FrontendURL != nil && *account.FrontendURL != "" {
		host = *account.FrontendURL
	}
	if idx := strings.LastIndex(host, ":"); idx != -1 {
		host = host[:idx]
	}
	return "." + strings.TrimPrefix(host, ".")
}
