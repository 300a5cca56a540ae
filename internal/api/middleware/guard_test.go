package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"vantage/internal/session"

	"github.com/labstack/echo/v4"
)

func TestGuardTarget(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		path       string
		hasSession bool
		target     string
		redirect   bool
	}{
		{"root always goes to dashboard", "/", false, "/dashboard", true},
		{"root redirects even with a session", "/", true, "/dashboard", true},
		{"dashboard without session goes to login", "/dashboard", false, "/login?redirect=%2Fdashboard", true},
		{"nested dashboard path is preserved in redirect", "/dashboard/clients/42", false, "/login?redirect=%2Fdashboard%2Fclients%2F42", true},
		{"dashboard with session passes", "/dashboard/clients", true, "", false},
		{"login page is never guarded", "/login", false, "", false},
		{"api routes are never guarded", "/api/v1/clients", false, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			target, redirect := GuardTarget(tt.path, tt.hasSession)
			if redirect != tt.redirect || target != tt.target {
				t.Errorf("GuardTarget(%q, %v) = (%q, %v), want (%q, %v)",
					tt.path, tt.hasSession, target, redirect, tt.target, tt.redirect)
			}
		})
	}
}

func TestRouteGuardMiddleware(t *testing.T) {
	t.Parallel()

	e := echo.New()
	e.Use(RouteGuard())
	e.GET("/dashboard", func(c echo.Context) error {
		return c.String(http.StatusOK, "dashboard")
	})

	t.Run("no cookie redirects to login", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		if rec.Code != http.StatusFound {
			t.Fatalf("status = %d", rec.Code)
		}
		if loc := rec.Header().Get("Location"); loc != "/login?redirect=%2Fdashboard" {
			t.Errorf("Location = %q", loc)
		}
	})

	t.Run("cookie presence lets the request through", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		req.AddCookie(&http.Cookie{Name: session.CookieName, Value: "anything"})
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
	})

	t.Run("root redirects to dashboard", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		if rec.Code != http.StatusFound {
			t.Fatalf("status = %d", rec.Code)
		}
		if loc := rec.Header().Get("Location"); loc != "/dashboard" {
			t.Errorf("Location = %q", loc)
		}
	})
}
