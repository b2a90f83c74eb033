package middleware

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"repono/internal/domain"
	"repono/internal/port"
)

const ContextKeyAccount = "account"

// Tenant resolves the :tenant_id path segment into an Account and injects it
// into the request context. Every API route is scoped to exactly one tenant.
func Tenant(accounts port.AccountRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		tenant := c.Param("tenant_id")
		account, err := accounts.GetByTenant(c.Request.Context(), tenant)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
					"status":  http.StatusNotFound,
					"code":    "not_found",
					"message": "Tenant not found",
				})
				return
			}
			requestID, _ := c.Get("request_id")
			log.Printf("[%s] resolving tenant %q: %v", requestID, tenant, err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"status":  http.StatusInternalServerError,
				"message": "Internal server error",
			})
			return
		}

		c.Set(ContextKeyAccount, account)
		c.Next()
	}
}

// GetAccount extracts the resolved account from the Gin context.
func GetAccount(c *gin.Context) (*domain.Account, error) {
	val, exists := c.Get(ContextKeyAccount)
	if !exists {
		return nil, domain.ErrNotFound
	}
	return val.(*domain.Account), nil
}
