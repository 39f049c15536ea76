package middleware

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/reyvanevan/saas-admin-gateway/internal/core/ports"
)

// SessionKey is where the resolved Session lives on the echo context.
const SessionKey = "session"

// Session binds each request to its browser session: it reads the session
// cookie (minting one on first contact), resolves the Session through the
// manager, and injects it into the request context for handlers and guards.
func Session(manager ports.SessionManager, cookieName string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var sid string
			if cookie, err := c.Cookie(cookieName); err == nil && cookie.Value != "" {
				sid = cookie.Value
			} else {
				sid = uuid.NewString()
				c.SetCookie(&http.Cookie{
					Name:     cookieName,
					Value:    sid,
					Path:     "/",
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			sess := manager.Session(c.Request().Context(), sid)
			c.Set(SessionKey, sess)
			return next(c)
		}
	}
}

// SessionFrom extracts the Session bound by the Session middleware. The
// second return is false when the middleware did not run.
func SessionFrom(c echo.Context) (ports.Session, bool) {
	sess, ok := c.Get(SessionKey).(ports.Session)
	return sess, ok
}
