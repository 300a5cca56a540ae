package handlers

import (
	"errors"
	"net/http"
	"testing"

	"vantage/internal/backend"

	"github.com/labstack/echo/v4"
)

func TestToHTTPError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{
			name:    "authentication error becomes 401 with its message",
			err:     &backend.AuthenticationError{Message: "Invalid email or password"},
			code:    http.StatusUnauthorized,
			message: "Invalid email or password",
		},
		{
			name:    "network error becomes 502 with the generic message",
			err:     &backend.NetworkError{Err: errors.New("dial tcp: refused")},
			code:    http.StatusBadGateway,
			message: "Network error. Please try again.",
		},
		{
			name:    "request error keeps its backend status",
			err:     &backend.RequestError{Message: "Client code already exists", StatusCode: http.StatusConflict},
			code:    http.StatusConflict,
			message: "Client code already exists",
		},
		{
			name:    "request error with a non-error status maps to 502",
			err:     &backend.RequestError{Message: "Request failed", StatusCode: 0},
			code:    http.StatusBadGateway,
			message: "Request failed",
		},
		{
			name: "unknown errors become 500",
			err:  errors.New("boom"),
			code: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var httpErr *echo.HTTPError
			if !errors.As(toHTTPError(tt.err), &httpErr) {
				t.Fatal("want *echo.HTTPError")
			}
			if httpErr.Code != tt.code {
				t.Errorf("code = %d, want %d", httpErr.Code, tt.code)
			}
			if tt.message != "" && httpErr.Message != tt.message {
				t.Errorf("message = %v, want %q", httpErr.Message, tt.message)
			}
		})
	}
}
