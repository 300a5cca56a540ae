package handlers

import (
	"net/http"

	"vantage/internal/repositories"

	"github.com/labstack/echo/v4"
)

type DashboardHandler struct {
	dashboard *repositories.DashboardRepository
	settings  *repositories.SettingsRepository
}

func NewDashboardHandler(dashboard *repositories.DashboardRepository, settings *repositories.SettingsRepository) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, settings: settings}
}

// Stats serves the analytics cards on the dashboard landing page.
func (h *DashboardHandler) Stats(c echo.Context) error {
	stats, err := h.dashboard.Stats(c.Request().Context())
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, stats)
}

// GetSettings returns the admin settings singleton.
func (h *DashboardHandler) GetSettings(c echo.Context) error {
	settings, err := h.settings.Get(c.Request().Context())
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, settings)
}

type settingsRequest struct {
	OrganizationName string `json:"organizationName"`
	SupportEmail     string `json:"supportEmail" validate:"omitempty,email"`
	DefaultPageSize  int    `json:"defaultPageSize" validate:"omitempty,min=1,max=100"`
	AllowSignups     bool   `json:"allowSignups"`
}

// UpdateSettings submits admin settings changes.
func (h *DashboardHandler) UpdateSettings(c echo.Context) error {
	var req settingsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	settings, err := h.settings.Update(c.Request().Context(), req)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, settings)
}
