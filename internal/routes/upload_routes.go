package routes

import (
	"vantage/internal/handlers"

	"github.com/labstack/echo/v4"
)

// SetupUploadRoutes mounts bulk import on an authenticated group. Scope
// checks happen inside the handler against the target resource, not here.
func SetupUploadRoutes(api *echo.Group, uploads *handlers.UploadHandler) {
	g := api.Group("/uploads")
	g.POST("/:resource", uploads.Upload)
	g.GET("/jobs", uploads.ListJobs)
	g.GET("/jobs/:id", uploads.GetJob)
	g.GET("/jobs/:id/file", uploads.GetJobFile)
}
