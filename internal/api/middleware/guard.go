package middleware

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
)

// Guard protects a route subtree: requests without an authenticated session
// are redirected to the sign-in page carrying the originally requested
// location as a return target. The guard only reads session state; it never
// mutates it.
func Guard(signInPath string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess, ok := SessionFrom(c)
			if !ok {
				return echo.NewHTTPError(http.StatusInternalServerError, "session middleware not installed")
			}
			if !sess.IsAuthenticated() {
				target := signInPath + "?redirect=" + url.QueryEscape(c.Request().URL.RequestURI())
				return c.Redirect(http.StatusFound, target)
			}
			return next(c)
		}
	}
}

// RedirectAuthenticated sends already-signed-in users away from entry pages
// such as sign-in, towards the dashboard root.
func RedirectAuthenticated(target string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess, ok := SessionFrom(c)
			if !ok {
				return echo.NewHTTPError(http.StatusInternalServerError, "session middleware not installed")
			}
			if sess.IsAuthenticated() {
				return c.Redirect(http.StatusFound, target)
			}
			return next(c)
		}
	}
}
