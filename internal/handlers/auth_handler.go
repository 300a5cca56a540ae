package handlers

import (
	"net/http"

	"vantage/internal/session"
	"vantage/internal/utils/logger"

	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	sessions *session.Service
	log      *logger.Logger
}

func NewAuthHandler(sessions *session.Service) *AuthHandler {
	return &AuthHandler{sessions: sessions, log: logger.New("AuthHandler")}
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type sessionResponse struct {
	SubjectID string          `json:"subjectId"`
	Email     string          `json:"email"`
	Role      string          `json:"role"`
	Scopes    map[string]bool `json:"scopes"`
	ExpiresAt int64           `json:"expiresAt"`
}

// Login exchanges credentials for a backend token and sets the session
// cookie. The cookie expires exactly when the backend token does.
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	sess, err := h.sessions.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return toHTTPError(err)
	}

	cookie, err := h.sessions.EncodeCookie(sess)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to create session"})
	}
	c.SetCookie(cookie)

	h.log.Info("User %s signed in, session until %s", sess.Email, sess.ExpiresAt)

	return c.JSON(http.StatusOK, sessionResponse{
		SubjectID: sess.SubjectID,
		Email:     sess.Email,
		Role:      string(sess.Role),
		Scopes:    sess.Scopes,
		ExpiresAt: sess.ExpiresAt.Unix(),
	})
}

// Logout clears the session cookie and tells the backend to drop the token.
func (h *AuthHandler) Logout(c echo.Context) error {
	h.sessions.Logout(c.Request().Context())
	c.SetCookie(session.ClearCookie())
	return c.JSON(http.StatusOK, map[string]string{"message": "Signed out"})
}

// GetMe returns the current user's profile from the backend.
func (h *AuthHandler) GetMe(c echo.Context) error {
	user, err := h.sessions.Profile(c.Request().Context())
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, user)
}
