package middleware

import (
	"net/http"

	"vantage/internal/backend"
	"vantage/internal/models"
	"vantage/internal/session"
	"vantage/internal/utils/logger"

	"github.com/labstack/echo/v4"
)

var log = logger.New("auth_middleware")

// SessionMiddleware decodes the session cookie for API routes and makes the
// caller's identity and backend token available downstream.
type SessionMiddleware struct {
	sessions *session.Service
}

func NewSessionMiddleware(sessions *session.Service) *SessionMiddleware {
	return &SessionMiddleware{sessions: sessions}
}

func (m *SessionMiddleware) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(session.CookieName)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing session")
			}

			sess, err := m.sessions.DecodeCookie(cookie.Value)
			if err != nil {
				log.Warn("Rejected session cookie: %v", err)
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired session")
			}

			// Set context values
			c.Set("session", sess)
			c.Set("userID", sess.SubjectID)
			c.Set("email", sess.Email)
			c.Set("role", string(sess.Role))

			// Proxied backend calls are made on the caller's behalf.
			ctx := backend.WithToken(c.Request().Context(), sess.AccessToken)
			ctx = backend.WithActor(ctx, backend.Actor{ID: sess.SubjectID, Email: sess.Email})
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

// GetSession Helper functions to get values from context
func GetSession(c echo.Context) *session.Session {
	if sess, ok := c.Get("session").(*session.Session); ok {
		return sess
	}
	return nil
}

func GetUserID(c echo.Context) string {
	if id, ok := c.Get("userID").(string); ok {
		return id
	}
	return ""
}

func GetUserEmail(c echo.Context) string {
	if email, ok := c.Get("email").(string); ok {
		return email
	}
	return ""
}

func GetUserRole(c echo.Context) string {
	if role, ok := c.Get("role").(string); ok {
		return role
	}
	return ""
}

// RequireAdmin gates a route group to admin roles outright, for surfaces
// without a matching scope such as admin settings.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess := GetSession(c)
			if sess == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing session")
			}
			if sess.Role != models.UserRoleAdmin && sess.Role != models.UserRoleSuperAdmin {
				return echo.NewHTTPError(http.StatusForbidden, "Insufficient permissions")
			}
			return next(c)
		}
	}
}

// RequireScope gates a route group on one access scope. Admin roles imply
// every scope.
func RequireScope(scope string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess := GetSession(c)
			if sess == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing session")
			}
			if sess.Role == models.UserRoleAdmin || sess.Role == models.UserRoleSuperAdmin {
				return next(c)
			}
			if !sess.HasScope(scope) {
				return echo.NewHTTPError(http.StatusForbidden, "Insufficient permissions")
			}
			return next(c)
		}
	}
}
