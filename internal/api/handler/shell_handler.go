package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ShellHandler serves the application shell's entry points. These endpoints
// exist for their redirect semantics; the dashboard frontend renders the
// actual pages.
type ShellHandler struct{}

func NewShellHandler() *ShellHandler {
	return &ShellHandler{}
}

// Root routes the bare origin: authenticated sessions land on the dashboard,
// everyone else on sign-in. Unconditional redirect either way.
func (h *ShellHandler) Root(c echo.Context) error {
	sess, err := sessionFrom(c)
	if err != nil {
		return err
	}
	if sess.IsAuthenticated() {
		return c.Redirect(http.StatusFound, "/dashboard")
	}
	return c.Redirect(http.StatusFound, "/sign-in")
}

// SignIn is the unauthenticated entry page. The RedirectAuthenticated
// middleware bounces signed-in sessions before this runs.
func (h *ShellHandler) SignIn(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"page":     "sign-in",
		"redirect": c.QueryParam("redirect"),
	})
}

// Dashboard is the protected subtree root.
func (h *ShellHandler) Dashboard(c echo.Context) error {
	sess, err := sessionFrom(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{
		"page": "dashboard",
		"user": sess.State().User,
	})
}
