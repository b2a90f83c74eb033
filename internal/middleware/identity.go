package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"repono/internal/domain"
	"repono/internal/service"
)

const (
	ContextKeyIdentity = "identity"

	// AccessCookieName is the cookie carrying the access token.
	AccessCookieName = "jwt"
	// RefreshCookieName is the cookie carrying the refresh token.
	RefreshCookieName = "refresh"
)

// Identity resolves the requester from the Authorization header or the jwt
// cookie. Token validation fails closed: any defective token downgrades the
// request to anonymous instead of rejecting it. Tokens are tenant-scoped, so
// a token issued for another account is defective here even though its
// signature verifies; the session cookies are shared across subdomains and
// must not carry privileges between tenants.
func Identity(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextKeyIdentity, domain.Anonymous())

		token := BearerToken(c)
		if token == "" {
			token, _ = c.Cookie(AccessCookieName)
		}
		if token == "" {
			c.Next()
			return
		}

		claims, err := authService.ValidateAccess(token)
		if err != nil {
			c.Next()
			return
		}

		account, err := GetAccount(c)
		if err != nil || claims.AccountID != account.ID {
			c.Next()
			return
		}

		c.Set(ContextKeyIdentity, domain.Identity{
			Email: claims.Email,
			Role:  claims.Role,
		})
		c.Next()
	}
}

// GetIdentity extracts the requester identity; absent means anonymous.
func GetIdentity(c *gin.Context) domain.Identity {
	val, exists := c.Get(ContextKeyIdentity)
	if !exists {
		return domain.Anonymous()
	}
	return val.(domain.Identity)
}

// BearerToken returns the token from an "Authorization: Bearer ..." header,
// or the empty string.
func BearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}
