package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/PrathamBhadange/RehabAI/internal/config"
	"github.com/PrathamBhadange/RehabAI/internal/tokens"
)

// SessionClaimsMiddleware extracts session-token claims into the request
// context when a valid Bearer token is present. It never rejects: the auth
// handlers perform their own verification, this only gives the rate limiter
// a per-user key instead of a per-IP one.
func SessionClaimsMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer "))
		if raw != "" {
			if claims, err := tokens.VerifySessionToken(cfg, raw); err == nil {
				c.Set("claims", map[string]interface{}{
					"userId": claims.UserID,
					"email":  claims.Email,
					"role":   claims.Role,
				})
			}
		}
		c.Next()
	}
}
