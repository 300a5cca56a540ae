package routes

import (
	"vantage/internal/api/middleware"
	"vantage/internal/handlers"
	"vantage/internal/models"
	"vantage/internal/repositories"

	"github.com/labstack/echo/v4"
)

// SetupResourceRoutes mounts paginated CRUD for every backend entity on an
// already-authenticated group, each tree behind its management scope.
func SetupResourceRoutes(api *echo.Group, repos *repositories.Registry) {
	users := api.Group("/users", middleware.RequireScope(models.ScopeManageUsers))
	handlers.NewResourceHandler(repos.Users).RegisterRoutes(users, "")

	clients := api.Group("/clients", middleware.RequireScope(models.ScopeManageClients))
	handlers.NewResourceHandler(repos.Clients).RegisterRoutes(clients, "")

	stakeholders := api.Group("/stakeholders", middleware.RequireScope(models.ScopeManageStakeholders))
	handlers.NewResourceHandler(repos.Stakeholders).RegisterRoutes(stakeholders, "")

	projects := api.Group("/projects", middleware.RequireScope(models.ScopeManageProjects))
	handlers.NewResourceHandler(repos.Projects).RegisterRoutes(projects, "")

	interviews := api.Group("/interviews", middleware.RequireScope(models.ScopeManageInterviews))
	handlers.NewResourceHandler(repos.Interviews).RegisterRoutes(interviews, "")

	dashboardHandler := handlers.NewDashboardHandler(repos.Dashboard, repos.Settings)

	// Dashboard cards are visible to every signed-in user.
	api.GET("/dashboard", dashboardHandler.Stats)

	settings := api.Group("/settings", middleware.RequireAdmin())
	settings.GET("", dashboardHandler.GetSettings)
	settings.PUT("", dashboardHandler.UpdateSettings)
}
