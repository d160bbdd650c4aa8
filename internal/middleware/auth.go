package middleware

import (
	"github.com/gin-gonic/gin"

	appErrors "github.com/smart-defence/academy-console/pkg/errors"
	"github.com/smart-defence/academy-console/pkg/response"

	"github.com/smart-defence/academy-console/internal/service"
)

// Context keys set by the session guard.
const (
	ContextSession = "session"
)

// SessionAuth resolves the session cookie and aborts unauthenticated
// requests. Handlers behind it can read the session from the context.
func SessionAuth(sessions *service.SessionService, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, err := c.Cookie(cookieName)
		if err != nil || cookie == "" {
			response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "autenticação necessária"))
			c.Abort()
			return
		}

		session, err := sessions.Get(c.Request.Context(), cookie)
		if err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "sessão inválida ou expirada"))
			c.Abort()
			return
		}

		c.Set(ContextSession, session)
		c.Next()
	}
}

// SessionFrom extracts the session placed by SessionAuth.
func SessionFrom(c *gin.Context) (service.Session, bool) {
	v, ok := c.Get(ContextSession)
	if !ok {
		return service.Session{}, false
	}
	session, ok := v.(service.Session)
	return session, ok
}
