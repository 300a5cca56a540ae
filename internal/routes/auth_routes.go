package routes

import (
	"vantage/internal/api/middleware"
	"vantage/internal/handlers"
	"vantage/internal/session"

	"github.com/labstack/echo/v4"
)

func SetupAuthRoutes(e *echo.Echo, sessions *session.Service) {
	authHandler := handlers.NewAuthHandler(sessions)

	auth := e.Group("/api/v1/auth")

	// Public routes (no session required)
	auth.POST("/login", authHandler.Login)

	// Logout clears the cookie even when the session is already invalid, so
	// it skips the session middleware too.
	auth.POST("/logout", authHandler.Logout)

	sessionMiddleware := middleware.NewSessionMiddleware(sessions)
	me := auth.Group("/me")
	me.Use(sessionMiddleware.Middleware())
	me.GET("", authHandler.GetMe)
}
