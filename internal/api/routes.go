package api

import (
	"net/http"

	custommw "vantage/internal/api/middleware"
	"vantage/internal/routes"

	_ "vantage/docs/swagger"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

func (s *Server) registerRoutes() {
	// The guard middleware redirects "/" to the dashboard before this runs;
	// it only answers for clients that bypass the guard somehow.
	s.echo.GET("/", func(c echo.Context) error {
		return c.Redirect(http.StatusFound, custommw.DashboardPrefix)
	})

	// Health check
	// @Summary Health check
	// @Description Check if the server is running
	// @Produce json
	// @Success 200 {object} map[string]string "OK"
	// @Router /health [get]
	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/swagger/*", echoSwagger.WrapHandler)

	routes.SetupAuthRoutes(s.echo, s.sessions)

	// API v1 group, everything below carries a decoded session.
	api := s.echo.Group("/api/v1")
	sessionMiddleware := custommw.NewSessionMiddleware(s.sessions)
	api.Use(sessionMiddleware.Middleware())

	routes.SetupResourceRoutes(api, s.repos)
	routes.SetupUploadRoutes(api, s.uploads)
}
