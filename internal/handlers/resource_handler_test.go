package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"vantage/internal/api/validator"
	"vantage/internal/backend"
	"vantage/internal/config"
	"vantage/internal/repositories"

	"github.com/labstack/echo/v4"
)

type capturedRequest struct {
	method string
	path   string
	body   map[string]interface{}
}

func newResourceTestServer(t *testing.T, captured *capturedRequest) *echo.Echo {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.method = r.Method
		captured.path = r.URL.Path
		captured.body = nil
		_ = json.NewDecoder(r.Body).Decode(&captured.body)
		_, _ = w.Write([]byte(`{"data":{"id":"c1","name":"Acme","code":"AC"},"success":true,"statusCode":200}`))
	}))
	t.Cleanup(srv.Close)

	repos := repositories.NewRegistry(backend.NewClient(config.BackendConfig{BaseURL: srv.URL, Timeout: 2 * time.Second}))

	e := echo.New()
	e.Validator = validator.NewValidator()
	NewResourceHandler(repos.Clients).RegisterRoutes(e.Group("/clients"), "")
	return e
}

func TestCreateHandlerSubmitsOnlyProvidedFields(t *testing.T) {
	t.Parallel()

	var captured capturedRequest
	e := newResourceTestServer(t, &captured)

	req := httptest.NewRequest(http.MethodPost, "/clients",
		strings.NewReader(`{"name":"Acme","code":"AC"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if captured.body["name"] != "Acme" || captured.body["code"] != "AC" {
		t.Errorf("body = %v", captured.body)
	}
	for _, owned := range []string{"id", "isDeleted", "createdAt", "updatedAt", "deletedAt"} {
		if _, ok := captured.body[owned]; ok {
			t.Errorf("record field %s leaked into the submitted payload: %v", owned, captured.body[owned])
		}
	}
}

func TestCreateHandlerValidatesBeforeAnyBackendCall(t *testing.T) {
	t.Parallel()

	var captured capturedRequest
	e := newResourceTestServer(t, &captured)

	// code is required on clients
	req := httptest.NewRequest(http.MethodPost, "/clients",
		strings.NewReader(`{"name":"Acme"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 before the request leaves the gateway", rec.Code)
	}
	if captured.method != "" {
		t.Error("invalid payload must never reach the backend")
	}
}

func TestUpdateHandlerAcceptsPartialBodies(t *testing.T) {
	t.Parallel()

	var captured capturedRequest
	e := newResourceTestServer(t, &captured)

	// A partial update carries only the changed field; required tags must
	// not apply to it.
	req := httptest.NewRequest(http.MethodPut, "/clients/c1",
		strings.NewReader(`{"notes":"renewed contract"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if captured.method != http.MethodPut || captured.path != "/client/c1" {
		t.Errorf("backend saw %s %s", captured.method, captured.path)
	}
	if len(captured.body) != 1 || captured.body["notes"] != "renewed contract" {
		t.Errorf("body = %v, want only the provided field", captured.body)
	}
}
