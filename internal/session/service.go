package session

import (
	"context"
	"errors"
	"net/http"

	"vantage/internal/backend"
	"vantage/internal/config"
	"vantage/internal/models"
	"vantage/internal/utils/logger"
)

type Service struct {
	api    *backend.Client
	secret []byte
	log    *logger.Logger
}

func NewService(api *backend.Client, cfg config.SessionConfig) *Service {
	return &Service{
		api:    api,
		secret: []byte(cfg.Secret),
		log:    logger.New("session"),
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string       `json:"accessToken"`
	User        *models.User `json:"user,omitempty"`
}

// Login exchanges credentials for a backend access token and builds the
// session from the token's own claims. A backend rejection surfaces as an
// AuthenticationError carrying the backend's message.
func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	resp, err := backend.Request[loginResponse](ctx, s.api, http.MethodPost, "/auth/login", &backend.RequestOptions{
		Body: loginRequest{Email: email, Password: password},
	})
	if err != nil {
		var reqErr *backend.RequestError
		if errors.As(err, &reqErr) {
			return nil, &backend.AuthenticationError{Message: reqErr.Message}
		}
		return nil, err
	}

	sess, err := NewFromToken(resp.AccessToken)
	if err != nil {
		return nil, s.log.Error("Backend returned an undecodable access token", err)
	}
	return sess, nil
}

// Logout invalidates the token server-side. Cookie clearing is the caller's
// job; a backend failure here does not keep the user signed in.
func (s *Service) Logout(ctx context.Context) {
	if _, err := s.api.Do(ctx, http.MethodPost, "/auth/logout", nil); err != nil {
		s.log.Warn("Backend logout failed: %v", err)
	}
}

// Profile fetches the authenticated user's own record.
func (s *Service) Profile(ctx context.Context) (*models.User, error) {
	return backend.Request[models.User](ctx, s.api, http.MethodGet, "/auth/profile", nil)
}
