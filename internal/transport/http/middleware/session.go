package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"gopherblog/internal/pkg/jwtutil"
	"gopherblog/internal/transport/http/response"
)

const (
	ContextAccountIDKey = "account_id"
	ContextUsernameKey  = "username"

	// SessionCookieName holds the signed session token set at login and
	// cleared at logout.
	SessionCookieName = "blog_session"
)

// SessionRequired resolves the session from the cookie, or from a bearer
// header for non-browser clients, and aborts with 401 when neither is valid.
func SessionRequired(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFromRequest(c)
		if token == "" {
			response.Error(c, 401, response.CodeUnauthorized, "login required")
			c.Abort()
			return
		}

		claims, err := jwtutil.ParseToken(secret, token)
		if err != nil {
			response.Error(c, 401, response.CodeUnauthorized, "invalid or expired session")
			c.Abort()
			return
		}

		c.Set(ContextAccountIDKey, claims.UserID)
		c.Set(ContextUsernameKey, claims.Username)
		c.Next()
	}
}

func tokenFromRequest(c *gin.Context) string {
	if cookie, err := c.Cookie(SessionCookieName); err == nil && cookie != "" {
		return cookie
	}

	authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
	const prefix = "Bearer "
	if strings.HasPrefix(authHeader, prefix) {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, prefix))
	}
	return ""
}
