package middleware

import (
	"net/http"
	"strings"

	"diligencias/internal/pkg/jwt"
	"diligencias/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// SessionCookie carries the session token for the web dashboard.
const SessionCookie = "cartorio-session"

const (
	ContextRole      = "session_role"
	ContextExpiresAt = "session_expires_at"
)

type tokenValidator interface {
	ValidateToken(token string) (*jwt.Claims, error)
}

// SessionAuth accepts the session cookie or an "Authorization: Bearer"
// header, the latter for the driver's app.
func SessionAuth(tokens tokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := sessionToken(c)
		if !ok {
			response.Abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
			return
		}

		claims, err := tokens.ValidateToken(token)
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, "INVALID_TOKEN", "Session is invalid or expired")
			return
		}

		c.Set(ContextRole, claims.Role)
		if claims.ExpiresAt != nil {
			c.Set(ContextExpiresAt, claims.ExpiresAt.Time)
		}
		c.Next()
	}
}

func sessionToken(c *gin.Context) (string, bool) {
	if h := c.GetHeader("Authorization"); h != "" {
		scheme, token, found := strings.Cut(h, " ")
		if !found || !strings.EqualFold(scheme, "bearer") {
			return "", false
		}
		token = strings.TrimSpace(token)
		return token, token != ""
	}

	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie != "" {
		return cookie, true
	}

	// browsers cannot set headers on websocket upgrades
	if t := c.Query("token"); t != "" && strings.EqualFold(c.GetHeader("Upgrade"), "websocket") {
		return t, true
	}
	return "", false
}
