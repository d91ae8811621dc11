package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/DrNytkenstien/secureauth/domain"
)

// SessionMW wraps the session repository for middleware
type SessionMW struct {
	sessionRepo domain.SessionRepository
}

// NewSessionMW creates new session middleware wrapper
func NewSessionMW(sessionRepo domain.SessionRepository) *SessionMW {
	return &SessionMW{sessionRepo: sessionRepo}
}

// WithSession returns the session middleware function
func (mw *SessionMW) WithSession() gin.HandlerFunc {
	return SessionMiddleware(mw.sessionRepo)
}

// SessionMiddleware authenticates requests by resolving the bearer token
// against the session registry. Expired sessions fail authentication, the
// lookup itself lazily deletes them.
func SessionMiddleware(sessionRepo domain.SessionRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   gin.H{"code": "MISSING_TOKEN", "message": "Authorization header required"},
			})
			c.Abort()
			return
		}

		tokenParts := strings.SplitN(authHeader, " ", 2)
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   gin.H{"code": "INVALID_TOKEN", "message": "Invalid authorization header format"},
			})
			c.Abort()
			return
		}

		session, err := sessionRepo.FindByID(c.Request.Context(), tokenParts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   gin.H{"code": "INVALID_SESSION", "message": "Session is invalid or expired"},
			})
			c.Abort()
			return
		}

		c.Set("session_id", session.ID)
		c.Set("user_id", session.UserID)
		c.Set("email", session.Email)

		c.Next()
	}
}
