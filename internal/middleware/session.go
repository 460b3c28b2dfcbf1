package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/horizon-academy/academy-gateway/internal/models"
	"github.com/horizon-academy/academy-gateway/internal/service"
	"github.com/horizon-academy/academy-gateway/internal/upstream"
	appErrors "github.com/horizon-academy/academy-gateway/pkg/errors"
	"github.com/horizon-academy/academy-gateway/pkg/response"
)

// ContextSessionKey is the gin context key storing the resolved session.
const ContextSessionKey = "currentSession"

// Session resolves the caller's session from the Authorization header and
// never blocks: a missing or undecodable token yields the anonymous session.
// The raw bearer token is stashed on the request context so the upstream
// client can forward it; the gateway itself does not verify signatures, the
// legacy backend remains the authority.
func Session(sessions *service.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		session := sessions.Decode(token)
		c.Set(ContextSessionKey, session)
		if token != "" {
			c.Request = c.Request.WithContext(upstream.WithBearer(c.Request.Context(), token))
		}
		c.Next()
	}
}

// RequireSession blocks anonymous callers.
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := SessionFrom(c)
		if !session.Authenticated {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAdmin blocks callers without an administrative role. There is no
// other way in: no configured account, email, or token shape bypasses this.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := SessionFrom(c)
		if !session.Authenticated {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}
		if !session.IsAdmin() {
			response.Error(c, appErrors.ErrForbidden)
			c.Abort()
			return
		}
		c.Next()
	}
}

// SessionFrom returns the resolved session, anonymous when absent.
func SessionFrom(c *gin.Context) *models.Session {
	value, exists := c.Get(ContextSessionKey)
	if !exists {
		return models.Anonymous()
	}
	session, ok := value.(*models.Session)
	if !ok || session == nil {
		return models.Anonymous()
	}
	return session
}

func bearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
