package session

import (
	"errors"
	"time"

	"vantage/internal/models"

	"github.com/golang-jwt/jwt/v4"
)

// ErrMalformedToken is returned when a backend access token cannot be decoded
// or carries no usable exp claim. No session is ever built from such a token.
var ErrMalformedToken = errors.New("access token is malformed or missing exp claim")

// Claims is the claim set backend access tokens carry.
type Claims struct {
	UserID string   `json:"user_id"`
	Email  string   `json:"email"`
	Role   string   `json:"role"`
	Scopes []string `json:"scopes"`
	jwt.RegisteredClaims
}

// Session is the authenticated state of one dashboard user.
//
// Invariant: ExpiresAt always equals the exp claim of the backend access
// token the session was built from. The session never gets a lifetime of its
// own, so its validity can never outlive the token's.
type Session struct {
	SubjectID   string
	Email       string
	Role        models.UserRole
	Scopes      map[string]bool
	AccessToken string
	ExpiresAt   time.Time
}

// NewFromToken maps a backend access token to a session in one step. The
// token is decoded without signature verification; only the backend holds the
// signing key and it revalidates the token on every proxied call.
func NewFromToken(accessToken string) (*Session, error) {
	claims := &Claims{}
	if _, _, err := new(jwt.Parser).ParseUnverified(accessToken, claims); err != nil {
		return nil, ErrMalformedToken
	}
	if claims.ExpiresAt == nil {
		return nil, ErrMalformedToken
	}

	subject := claims.UserID
	if subject == "" {
		subject = claims.Subject
	}

	return &Session{
		SubjectID:   subject,
		Email:       claims.Email,
		Role:        models.UserRole(claims.Role),
		Scopes:      scopeSet(claims),
		AccessToken: accessToken,
		ExpiresAt:   claims.ExpiresAt.Time,
	}, nil
}

// scopeSet derives the scope map from explicit scope claims, falling back to
// the role preset when the token carries none.
func scopeSet(claims *Claims) map[string]bool {
	scopes := make(map[string]bool)
	if len(claims.Scopes) > 0 {
		for _, s := range claims.Scopes {
			scopes[s] = true
		}
		return scopes
	}
	for _, s := range models.RoleScopes[models.UserRole(claims.Role)] {
		scopes[s] = true
	}
	return scopes
}

// HasScope reports whether the session grants the named scope. Absent keys
// are false.
func (s *Session) HasScope(scope string) bool {
	if s == nil {
		return false
	}
	return s.Scopes[scope]
}

// Expired reports whether the session has passed its expiry.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
