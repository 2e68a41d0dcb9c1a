package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tenderhub/portal-client/internal/core/domain"
	"github.com/tenderhub/portal-client/internal/core/ports"
)

// DashboardHandler stores the profile forms of the dashboard.
type DashboardHandler struct {
	profiles ports.ProfileRepository
}

func NewDashboardHandler(profiles ports.ProfileRepository) *DashboardHandler {
	return &DashboardHandler{profiles: profiles}
}

// CreateAdminProfile saves the caller's administrator profile.
//
// @Summary      Create administrator profile
// @Tags         dashboard
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      domain.AdminProfile  true  "Profile"
// @Success      201   {object}  domain.AdminProfile
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /dashboard/admin/createProfile [post]
func (h *DashboardHandler) CreateAdminProfile(c echo.Context) error {
	sub, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var p domain.AdminProfile
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.profiles.SaveAdmin(c.Request().Context(), sub, p); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, p)
}

// CreateContractorProfile saves the caller's contractor profile.
//
// @Summary      Create contractor profile
// @Tags         dashboard
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      domain.ContractorProfile  true  "Profile"
// @Success      201   {object}  domain.ContractorProfile
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /dashboard/contractor/createProfile [post]
func (h *DashboardHandler) CreateContractorProfile(c echo.Context) error {
	sub, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var p domain.ContractorProfile
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.profiles.SaveContractor(c.Request().Context(), sub, p); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, p)
}
