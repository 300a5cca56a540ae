package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"vantage/internal/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(config.BackendConfig{BaseURL: srv.URL, Timeout: 2 * time.Second}), srv
}

func TestDoUnwrapsEnvelope(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"id":"c1","name":"Acme"},"message":"ok","success":true,"statusCode":200}`))
	})

	type clientRecord struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}

	got, err := Request[clientRecord](context.Background(), client, http.MethodGet, "/client/c1", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != "c1" || got.Name != "Acme" {
		t.Errorf("got %+v, want id=c1 name=Acme", got)
	}
}

func TestDoFailureCarriesEnvelopeMessage(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"message":"Client code already exists","statusCode":409,"errors":{"code":"taken"}}`))
	})

	_, err := client.Do(context.Background(), http.MethodPost, "/client", nil)

	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("want RequestError, got %T: %v", err, err)
	}
	if reqErr.Message != "Client code already exists" {
		t.Errorf("message = %q", reqErr.Message)
	}
	if reqErr.StatusCode != http.StatusConflict {
		t.Errorf("status = %d", reqErr.StatusCode)
	}
	if reqErr.Errors["code"] != "taken" {
		t.Errorf("field errors = %v", reqErr.Errors)
	}
}

func TestDoFailureWithoutMessageUsesFallback(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("upstream exploded"))
	})

	_, err := client.Do(context.Background(), http.MethodGet, "/client", nil)

	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("want RequestError, got %T: %v", err, err)
	}
	if reqErr.Message != "Request failed" {
		t.Errorf("message = %q, want fallback", reqErr.Message)
	}
}

func TestDoNotFoundMatchesErrNotFound(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"Client not found","statusCode":404}`))
	})

	_, err := client.Do(context.Background(), http.MethodGet, "/client/missing", nil)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestDoUndecodableSuccessIsAFailure(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>definitely not the envelope</html>"))
	})

	_, err := client.Do(context.Background(), http.MethodGet, "/client", nil)

	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("want RequestError, got %T: %v", err, err)
	}
	if reqErr.Message != "Request failed" {
		t.Errorf("message = %q", reqErr.Message)
	}
}

func TestDoNetworkError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	client := NewClient(config.BackendConfig{BaseURL: srv.URL, Timeout: time.Second})
	srv.Close()

	_, err := client.Do(context.Background(), http.MethodGet, "/client", nil)

	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("want NetworkError, got %T: %v", err, err)
	}
	if netErr.Error() != "Network error. Please try again." {
		t.Errorf("message = %q", netErr.Error())
	}
}

func TestDoSendsBearerTokenAndQuery(t *testing.T) {
	t.Parallel()

	var gotAuth string
	var gotQuery url.Values
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotQuery = r.URL.Query()
		_, _ = w.Write([]byte(`{"data":null,"success":true,"statusCode":200}`))
	})

	ctx := WithToken(context.Background(), "token-123")
	q := url.Values{}
	q.Set("page", "2")
	q.Set("limit", "10")
	if _, err := client.Do(ctx, http.MethodGet, "/client", &RequestOptions{Query: q}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotAuth != "Bearer token-123" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if gotQuery.Get("page") != "2" || gotQuery.Get("limit") != "10" {
		t.Errorf("query = %v", gotQuery)
	}
}

func TestDoSendsMultipartBodyVerbatim(t *testing.T) {
	t.Parallel()

	var gotContentType string
	var gotField string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		if err := r.ParseMultipartForm(1 << 20); err == nil {
			gotField = r.FormValue("resource")
		}
		_, _ = w.Write([]byte(`{"data":null,"success":true,"statusCode":200}`))
	})

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := mw.WriteField("resource", "clients"); err != nil {
		t.Fatal(err)
	}
	part, err := mw.CreateFormFile("file", "clients.csv")
	if err != nil {
		t.Fatal(err)
	}
	_, _ = part.Write([]byte("name,code\nAcme,AC\n"))
	_ = mw.Close()

	opts := &RequestOptions{Multipart: &Multipart{Body: &buf, ContentType: mw.FormDataContentType()}}
	if _, err := client.Do(context.Background(), http.MethodPost, "/upload", opts); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotContentType != mw.FormDataContentType() {
		t.Errorf("content type = %q, want the multipart writer's own %q", gotContentType, mw.FormDataContentType())
	}
	if !strings.HasPrefix(gotContentType, "multipart/form-data") {
		t.Errorf("content type = %q, must not fall back to JSON", gotContentType)
	}
	if gotField != "clients" {
		t.Errorf("form field = %q, body was not passed through intact", gotField)
	}
}

func TestDoEncodesJSONBody(t *testing.T) {
	t.Parallel()

	var gotContentType string
	var gotBody map[string]interface{}
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = w.Write([]byte(`{"data":null,"success":true,"statusCode":200}`))
	})

	body := map[string]interface{}{"name": "Acme"}
	if _, err := client.Do(context.Background(), http.MethodPost, "/client", &RequestOptions{Body: body}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotContentType != "application/json" {
		t.Errorf("content type = %q", gotContentType)
	}
	if gotBody["name"] != "Acme" {
		t.Errorf("body = %v", gotBody)
	}
}
