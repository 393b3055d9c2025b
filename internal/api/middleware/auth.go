package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/experium/bookingapi/internal/domain"
	"github.com/experium/bookingapi/internal/repository"
)

const accountContextKey = "account"

// AuthMiddleware authenticates requests via a bearer API key and
// stores the matching account on the request context
func AuthMiddleware(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing API key"})
			return
		}

		apiKey := strings.TrimPrefix(header, "Bearer ")
		account, err := repos.Account.GetByAPIKey(c.Request.Context(), apiKey)
		if err != nil {
			logger.Warn("Rejected API key", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid API key"})
			return
		}

		c.Set(accountContextKey, account)
		c.Next()
	}
}

// GetAccountFromContext returns the authenticated account, if any
func GetAccountFromContext(c *gin.Context) (*domain.Account, bool) {
	val, ok := c.Get(accountContextKey)
	if !ok {
		return nil, false
	}
	account, ok := val.(*domain.Account)
	return account, ok
}
