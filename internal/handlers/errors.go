package handlers

import (
	"errors"
	"net/http"

	"vantage/internal/backend"

	"github.com/labstack/echo/v4"
)

// toHTTPError converts a backend failure into the JSON error the UI renders
// as a toast. Every error is recovered here; nothing propagates further.
func toHTTPError(err error) error {
	var authErr *backend.AuthenticationError
	if errors.As(err, &authErr) {
		return echo.NewHTTPError(http.StatusUnauthorized, authErr.Message)
	}

	var netErr *backend.NetworkError
	if errors.As(err, &netErr) {
		return echo.NewHTTPError(http.StatusBadGateway, netErr.Error())
	}

	var reqErr *backend.RequestError
	if errors.As(err, &reqErr) {
		code := reqErr.StatusCode
		if code < http.StatusBadRequest {
			code = http.StatusBadGateway
		}
		return echo.NewHTTPError(code, reqErr.Message)
	}

	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}
