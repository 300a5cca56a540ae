package session

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"vantage/internal/backend"
	"vantage/internal/config"
	"vantage/internal/models"

	"github.com/golang-jwt/jwt/v4"
)

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("backend-secret-the-gateway-never-has"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestNewFromTokenExpiryMatchesExpClaim(t *testing.T) {
	t.Parallel()

	exp := time.Now().Add(2 * time.Hour).Truncate(time.Second)
	token := signToken(t, jwt.MapClaims{
		"user_id": "u1",
		"email":   "admin@example.com",
		"role":    "ADMIN",
		"exp":     exp.Unix(),
	})

	sess, err := NewFromToken(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !sess.ExpiresAt.Equal(exp) {
		t.Errorf("ExpiresAt = %v, want exactly %v", sess.ExpiresAt, exp)
	}
	if sess.SubjectID != "u1" || sess.Email != "admin@example.com" {
		t.Errorf("identity = %s/%s", sess.SubjectID, sess.Email)
	}
	if sess.AccessToken != token {
		t.Error("session must keep the original access token")
	}
}

func TestNewFromTokenRejectsBadTokens(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-jwt"},
		{"empty", ""},
		{"no exp claim", func() string {
			return signToken(t, jwt.MapClaims{"user_id": "u1", "role": "ADMIN"})
		}()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := NewFromToken(tt.token); !errors.Is(err, ErrMalformedToken) {
				t.Fatalf("want ErrMalformedToken, got %v", err)
			}
		})
	}
}

func TestNewFromTokenScopeDerivation(t *testing.T) {
	t.Parallel()

	exp := time.Now().Add(time.Hour).Unix()

	t.Run("explicit scopes win over role preset", func(t *testing.T) {
		t.Parallel()
		token := signToken(t, jwt.MapClaims{
			"user_id": "u1",
			"role":    "ADMIN",
			"scopes":  []string{models.ScopeManageClients},
			"exp":     exp,
		})
		sess, err := NewFromToken(token)
		if err != nil {
			t.Fatal(err)
		}
		if !sess.HasScope(models.ScopeManageClients) {
			t.Error("explicit scope missing")
		}
		if sess.HasScope(models.ScopeManageUsers) {
			t.Error("role preset leaked past explicit scopes")
		}
	})

	t.Run("member preset fills in when token has no scopes", func(t *testing.T) {
		t.Parallel()
		token := signToken(t, jwt.MapClaims{
			"user_id": "u2",
			"role":    "MEMBER",
			"exp":     exp,
		})
		sess, err := NewFromToken(token)
		if err != nil {
			t.Fatal(err)
		}
		if !sess.HasScope(models.ScopeManageInterviews) || !sess.HasScope(models.ScopeManageStakeholders) {
			t.Errorf("member scopes = %v", sess.Scopes)
		}
		if sess.HasScope(models.ScopeManageUsers) {
			t.Error("member must not manage users")
		}
	})
}

func TestSessionExpired(t *testing.T) {
	t.Parallel()

	now := time.Now()
	sess := &Session{ExpiresAt: now}

	if sess.Expired(now.Add(-time.Second)) {
		t.Error("session expired before its expiry")
	}
	if !sess.Expired(now) {
		t.Error("session must expire at the exact expiry instant")
	}
	if !sess.Expired(now.Add(time.Second)) {
		t.Error("session still alive after expiry")
	}
}

func TestCookieRoundTrip(t *testing.T) {
	t.Parallel()

	svc := NewService(nil, config.SessionConfig{Secret: "test-secret"})
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	sess := &Session{
		SubjectID:   "u1",
		Email:       "admin@example.com",
		Role:        models.UserRoleAdmin,
		Scopes:      map[string]bool{models.ScopeManageClients: true},
		AccessToken: "backend-token",
		ExpiresAt:   exp,
	}

	cookie, err := svc.EncodeCookie(sess)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if cookie.Name != CookieName || !cookie.HttpOnly {
		t.Errorf("cookie attributes = %+v", cookie)
	}
	if !cookie.Expires.Equal(exp) {
		t.Errorf("cookie expires %v, want %v", cookie.Expires, exp)
	}

	got, err := svc.DecodeCookie(cookie.Value)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.SubjectID != sess.SubjectID || got.Email != sess.Email || got.Role != sess.Role {
		t.Errorf("roundtrip identity = %+v", got)
	}
	if got.AccessToken != "backend-token" {
		t.Error("access token lost in roundtrip")
	}
	if !got.HasScope(models.ScopeManageClients) {
		t.Error("scope lost in roundtrip")
	}
}

func TestDecodeCookieRejectsTampering(t *testing.T) {
	t.Parallel()

	svc := NewService(nil, config.SessionConfig{Secret: "test-secret"})
	other := NewService(nil, config.SessionConfig{Secret: "different-secret"})

	cookie, err := svc.EncodeCookie(&Session{
		SubjectID: "u1",
		Role:      models.UserRoleAdmin,
		ExpiresAt: time.Now().Add(time.Hour),
	})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := other.DecodeCookie(cookie.Value); err == nil {
		t.Error("cookie signed with another secret must not decode")
	}
	if _, err := svc.DecodeCookie(cookie.Value + "x"); err == nil {
		t.Error("tampered cookie must not decode")
	}

	expired, err := svc.EncodeCookie(&Session{
		SubjectID: "u1",
		ExpiresAt: time.Now().Add(-time.Minute),
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.DecodeCookie(expired.Value); err == nil {
		t.Error("expired cookie must not decode")
	}
}

func TestDecodeCookieRejectsMissingExpiry(t *testing.T) {
	t.Parallel()

	svc := NewService(nil, config.SessionConfig{Secret: "test-secret"})

	// Correctly signed with the service secret but carrying no exp claim;
	// jwt treats exp as optional, the cookie codec must not.
	value, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   "u1",
		"email": "admin@example.com",
		"role":  "ADMIN",
	}).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := svc.DecodeCookie(value); !errors.Is(err, ErrMalformedToken) {
		t.Fatalf("want ErrMalformedToken, got %v", err)
	}
}

func TestLoginRejectionBecomesAuthenticationError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Invalid email or password","statusCode":401}`))
	}))
	t.Cleanup(srv.Close)

	svc := NewService(backend.NewClient(config.BackendConfig{BaseURL: srv.URL, Timeout: time.Second}),
		config.SessionConfig{Secret: "test-secret"})

	_, err := svc.Login(context.Background(), "admin@example.com", "wrong")

	var authErr *backend.AuthenticationError
	if !errors.As(err, &authErr) {
		t.Fatalf("want AuthenticationError, got %T: %v", err, err)
	}
	if authErr.Message != "Invalid email or password" {
		t.Errorf("message = %q, want the backend's own message", authErr.Message)
	}
}

func TestLoginBuildsSessionFromBackendToken(t *testing.T) {
	t.Parallel()

	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	token := signToken(t, jwt.MapClaims{
		"user_id": "u1",
		"email":   "admin@example.com",
		"role":    "ADMIN",
		"exp":     exp.Unix(),
	})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" {
			t.Errorf("path = %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"data":{"accessToken":"` + token + `"},"success":true,"statusCode":200}`))
	}))
	t.Cleanup(srv.Close)

	svc := NewService(backend.NewClient(config.BackendConfig{BaseURL: srv.URL, Timeout: time.Second}),
		config.SessionConfig{Secret: "test-secret"})

	sess, err := svc.Login(context.Background(), "admin@example.com", "correct")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !sess.ExpiresAt.Equal(exp) {
		t.Errorf("session expiry %v, want token exp %v", sess.ExpiresAt, exp)
	}
	if sess.Role != models.UserRoleAdmin {
		t.Errorf("role = %s", sess.Role)
	}
}
