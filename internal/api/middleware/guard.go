package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"vantage/internal/session"

	"github.com/labstack/echo/v4"
)

const (
	// DashboardPrefix is the protected page tree.
	DashboardPrefix = "/dashboard"
	// LoginPath is where unauthenticated dashboard requests land.
	LoginPath = "/login"
)

// GuardTarget decides where an incoming page request should be redirected.
// It is a pure function of the path and cookie presence:
//
//	/              -> /dashboard (always)
//	/dashboard...  -> /login?redirect=<path> when no session cookie
//	anything else  -> pass through
//
// Presence is the only check here. Signature and expiry validation belong to
// the session middleware; the backend revalidates on every proxied call.
func GuardTarget(path string, hasSession bool) (string, bool) {
	if path == "/" {
		return DashboardPrefix, true
	}
	if strings.HasPrefix(path, DashboardPrefix) && !hasSession {
		return LoginPath + "?redirect=" + url.QueryEscape(path), true
	}
	return "", false
}

// RouteGuard wraps GuardTarget as echo middleware.
func RouteGuard() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			_, err := c.Cookie(session.CookieName)
			hasSession := err == nil

			if target, ok := GuardTarget(c.Request().URL.Path, hasSession); ok {
				return c.Redirect(http.StatusFound, target)
			}
			return next(c)
		}
	}
}
