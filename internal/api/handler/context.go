package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tenderhub/portal-client/internal/api/middleware"
	"github.com/tenderhub/portal-client/internal/core/domain"
)

// ctxIdentity returns the subject and role injected by the Auth middleware.
// Their absence means the route was mounted without Auth.
func ctxIdentity(c echo.Context) (string, domain.Role, error) {
	sub, _ := c.Get(middleware.ContextSubject).(string)
	role, _ := c.Get(middleware.ContextRole).(domain.Role)
	if sub == "" || role == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return sub, role, nil
}
