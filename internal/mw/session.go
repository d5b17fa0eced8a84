package mw

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"audimew-storefront/internal/session"
)

// SessionHeader carries the session ID for clients that do not keep cookies.
const SessionHeader = "X-Session-ID"

const sessionKey = "session"

// Session resolves the caller's session from the X-Session-ID header or the
// session cookie, creating a fresh one when neither names a live session.
// The ID is echoed back in both places.
func Session(store *session.Store, cookieName string, maxAge int) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(SessionHeader)
		if id == "" {
			id, _ = c.Cookie(cookieName)
		}

		sess, ok := store.Get(id)
		if !ok {
			sess = store.Create()
		}

		c.Header(SessionHeader, sess.ID)
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(cookieName, sess.ID, maxAge, "/", "", false, true)
		c.Set(sessionKey, sess)
		c.Next()
	}
}

// CurrentSession returns the session attached by the Session middleware.
func CurrentSession(c *gin.Context) *session.Session {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil
	}
	sess, _ := v.(*session.Session)
	return sess
}
