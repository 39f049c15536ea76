package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/reyvanevan/saas-admin-gateway/internal/api/metrics"
	"github.com/reyvanevan/saas-admin-gateway/internal/core/domain"
	"github.com/reyvanevan/saas-admin-gateway/internal/core/ports"
)

// AuthHandler exposes the session actions over HTTP. Each request operates on
// the browser session bound by the Session middleware.
type AuthHandler struct{}

func NewAuthHandler() *AuthHandler {
	return &AuthHandler{}
}

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name"`
	Role     string `json:"role" validate:"required"`
	TenantID string `json:"tenant_id"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

type userResponse struct {
	User *domain.User `json:"user"`
}

// Register creates a new user account. It does not sign the new user in.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  userResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	sess, err := sessionFrom(c)
	if err != nil {
		return err
	}

	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := sess.Register(c.Request().Context(), ports.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Role:     domain.ParseRole(req.Role),
		TenantID: req.TenantID,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, userResponse{User: user})
}

// Login authenticates the session. Tokens stay server-side in the session's
// token slots; the client only ever sees its session cookie.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  userResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	sess, err := sessionFrom(c)
	if err != nil {
		return err
	}

	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := sess.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, userResponse{User: user})
}

// Logout clears the session's tokens and resets it to the empty state.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      204
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	sess, err := sessionFrom(c)
	if err != nil {
		return err
	}

	if err := sess.Logout(c.Request().Context()); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Refresh rotates the session's token pair. A failed refresh has already
// forced the session to the logged-out state by the time the error surfaces.
//
// @Summary      Refresh session tokens
// @Tags         auth
// @Produce      json
// @Success      204
// @Failure      401   {object}  map[string]string
// @Router       /auth/refresh [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	sess, err := sessionFrom(c)
	if err != nil {
		return err
	}

	if err := sess.RefreshToken(c.Request().Context()); err != nil {
		metrics.RefreshesTotal.WithLabelValues("failure").Inc()
		metrics.ForcedLogoutsTotal.Inc()
		return err
	}

	metrics.RefreshesTotal.WithLabelValues("success").Inc()
	return c.NoContent(http.StatusNoContent)
}

// Me fetches the authenticated user from the identity provider and commits it
// to the session, replacing any stale identity.
//
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Success      200   {object}  userResponse
// @Failure      401   {object}  map[string]string
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	sess, err := sessionFrom(c)
	if err != nil {
		return err
	}

	user, err := sess.CurrentUser(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userResponse{User: user})
}

// ChangePassword rotates the authenticated user's password.
//
// @Summary      Change password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      changePasswordRequest  true  "Current and new password"
// @Success      204
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /auth/change-password [post]
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	sess, err := sessionFrom(c)
	if err != nil {
		return err
	}

	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := sess.ChangePassword(c.Request().Context(), req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
