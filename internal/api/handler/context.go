package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/reyvanevan/saas-admin-gateway/internal/api/middleware"
	"github.com/reyvanevan/saas-admin-gateway/internal/core/ports"
)

// sessionFrom extracts the browser session bound by the Session middleware.
// Its absence means the route was wired without the middleware, which is a
// server bug, not a client error.
func sessionFrom(c echo.Context) (ports.Session, error) {
	sess, ok := middleware.SessionFrom(c)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "session middleware not installed")
	}
	return sess, nil
}
