package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/scholarhub-api/internal/models"
	appErrors "github.com/noah-isme/scholarhub-api/pkg/errors"
	"github.com/noah-isme/scholarhub-api/pkg/response"
)

// ContextSessionKey is the gin context key storing the session claims.
const ContextSessionKey = "currentSession"

type sessionValidator interface {
	ValidateToken(token string) (*models.SessionClaims, error)
	DemoStudentID() int
}

// Session resolves the current student from a bearer token. Requests without an Authorization
// header fall back to the demo student unless required is set; a header that does not carry a
// valid token is always rejected.
func Session(sessions sessionValidator, required bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := strings.TrimSpace(c.GetHeader("Authorization"))
		if header == "" {
			if required {
				response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "session required"))
				c.Abort()
				return
			}
			c.Set(ContextSessionKey, &models.SessionClaims{StudentID: sessions.DemoStudentID()})
			c.Next()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "invalid authorization header"))
			c.Abort()
			return
		}

		claims, err := sessions.ValidateToken(strings.TrimSpace(parts[1]))
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set(ContextSessionKey, claims)
		c.Next()
	}
}

// StudentID returns the student resolved by Session, or 0 when the middleware did not run.
func StudentID(c *gin.Context) int {
	value, exists := c.Get(ContextSessionKey)
	if !exists {
		return 0
	}
	claims, ok := value.(*models.SessionClaims)
	if !ok || claims == nil {
		return 0
	}
	return claims.StudentID
}

// Authenticated reports whether the request carried a session token rather than the demo fallback.
func Authenticated(c *gin.Context) bool {
	value, exists := c.Get(ContextSessionKey)
	if !exists {
		return false
	}
	claims, ok := value.(*models.SessionClaims)
	return ok && claims != nil && claims.Subject != ""
}
