package session

import (
	"fmt"
	"net/http"
	"sort"

	"vantage/internal/models"

	"github.com/golang-jwt/jwt/v4"
)

// CookieName is the session cookie the route guard checks for presence.
const CookieName = "vantage_session"

type cookieClaims struct {
	Email       string   `json:"email"`
	Role        string   `json:"role"`
	Scopes      []string `json:"scopes"`
	AccessToken string   `json:"accessToken"`
	jwt.RegisteredClaims
}

// EncodeCookie signs the session into an HS256 cookie. The cookie expires
// exactly when the backend token does.
func (s *Service) EncodeCookie(sess *Session) (*http.Cookie, error) {
	scopes := make([]string, 0, len(sess.Scopes))
	for scope, granted := range sess.Scopes {
		if granted {
			scopes = append(scopes, scope)
		}
	}
	sort.Strings(scopes)

	claims := cookieClaims{
		Email:       sess.Email,
		Role:        string(sess.Role),
		Scopes:      scopes,
		AccessToken: sess.AccessToken,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sess.SubjectID,
			ExpiresAt: jwt.NewNumericDate(sess.ExpiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("sign session cookie: %w", err)
	}

	return &http.Cookie{
		Name:     CookieName,
		Value:    signed,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}, nil
}

// DecodeCookie verifies the cookie signature and expiry and rebuilds the
// session. Tampered or expired cookies yield no session.
func (s *Service) DecodeCookie(value string) (*Session, error) {
	claims := &cookieClaims{}
	token, err := jwt.ParseWithClaims(value, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	// jwt treats exp as optional, so a signed cookie without one still
	// parses as valid.
	if err != nil || !token.Valid || claims.ExpiresAt == nil {
		return nil, ErrMalformedToken
	}

	scopes := make(map[string]bool, len(claims.Scopes))
	for _, scope := range claims.Scopes {
		scopes[scope] = true
	}

	return &Session{
		SubjectID:   claims.Subject,
		Email:       claims.Email,
		Role:        models.UserRole(claims.Role),
		Scopes:      scopes,
		AccessToken: claims.AccessToken,
		ExpiresAt:   claims.ExpiresAt.Time,
	}, nil
}

// ClearCookie returns an expired cookie that removes the session.
func ClearCookie() *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}
