package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/reyvanevan/saas-admin-gateway/internal/api/metrics"
	"github.com/reyvanevan/saas-admin-gateway/internal/core/domain"
	"github.com/reyvanevan/saas-admin-gateway/internal/core/navigation"
)

// NavigationHandler serves the navigation set for the session user's role.
type NavigationHandler struct{}

func NewNavigationHandler() *NavigationHandler {
	return &NavigationHandler{}
}

type navigationResponse struct {
	Groups []domain.NavGroup `json:"groups"`
}

// Navigation resolves the ordered navigation groups for the current session.
// An absent or unrecognized role yields the minimal default set rather than
// an error.
//
// @Summary      Navigation set for the current role
// @Tags         navigation
// @Produce      json
// @Success      200   {object}  navigationResponse
// @Router       /navigation [get]
func (h *NavigationHandler) Navigation(c echo.Context) error {
	sess, err := sessionFrom(c)
	if err != nil {
		return err
	}

	role := domain.RoleNone
	if user := sess.State().User; user != nil {
		role = user.Role
	}

	label := role.String()
	if label == "" {
		label = "none"
	}
	metrics.NavResolutionsTotal.WithLabelValues(label).Inc()

	return c.JSON(http.StatusOK, navigationResponse{Groups: navigation.Resolve(role)})
}
