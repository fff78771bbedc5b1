package middleware

import (
	"net/http"
	"time"

	"github.com/gla-dpsingh/Animal-Care/internal/session"

	"github.com/gin-gonic/gin"
)

const sessionContextKey = "portal_session"

// SessionFromContext returns the session attached by RequireAuth.
func SessionFromContext(c *gin.Context) (*session.Session, bool) {
	v, ok := c.Get(sessionContextKey)
	if !ok {
		return nil, false
	}
	sess, ok := v.(*session.Session)
	return sess, ok
}

type AuthMiddleware struct {
	Store session.Store
}

func NewAuthMiddleware(store session.Store) *AuthMiddleware {
	return &AuthMiddleware{Store: store}
}

// RequireAuth resolves the session cookie to a live, identified
// session and aborts with 401 otherwise.
func (a *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, err := c.Request.Cookie(session.CookieName)
		if err != nil || cookie.Value == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false, "message": "Unauthorized",
			})
			return
		}

		sess, err := a.Store.Get(c.Request.Context(), cookie.Value)
		if err != nil || sess == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false, "message": "Unauthorized",
			})
			return
		}

		if time.Now().After(sess.ExpiresAt) || sess.UserID == 0 {
			_ = a.Store.Delete(c.Request.Context(), cookie.Value)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false, "message": "Unauthorized",
			})
			return
		}

		c.Set(sessionContextKey, sess)
		c.Next()
	}
}
