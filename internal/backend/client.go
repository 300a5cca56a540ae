package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"vantage/internal/config"
	"vantage/internal/utils/logger"
)

// Client is the single gateway to the remote REST backend. It attaches the
// caller's bearer token, speaks the uniform response envelope and normalizes
// every failure into the error taxonomy in errors.go. It adds no retries and
// no caching.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *logger.Logger
}

func NewClient(cfg config.BackendConfig) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		log: logger.New("backend"),
	}
}

// Multipart carries a prepared multipart body. Its content type is used
// verbatim; the JSON content type is omitted.
type Multipart struct {
	Body        io.Reader
	ContentType string
}

// RequestOptions shape a single backend call.
type RequestOptions struct {
	Query     url.Values
	Body      interface{}
	Multipart *Multipart
}

// envelope is the uniform backend response shape:
// {data, message, success, statusCode} on success,
// {message, statusCode, errors} on failure.
type envelope struct {
	Data       json.RawMessage   `json:"data"`
	Message    string            `json:"message"`
	Success    bool              `json:"success"`
	StatusCode int               `json:"statusCode"`
	Errors     map[string]string `json:"errors,omitempty"`
}

// Do performs a request and returns the raw data field of the envelope.
// Callers never see the envelope wrapper.
func (c *Client) Do(ctx context.Context, method, path string, opts *RequestOptions) (json.RawMessage, error) {
	if opts == nil {
		opts = &RequestOptions{}
	}

	endpoint := c.baseURL + path
	if len(opts.Query) > 0 {
		endpoint += "?" + opts.Query.Encode()
	}

	var body io.Reader
	contentType := ""
	switch {
	case opts.Multipart != nil:
		body = opts.Multipart.Body
		contentType = opts.Multipart.ContentType
	case opts.Body != nil:
		encoded, err := json.Marshal(opts.Body)
		if err != nil {
			return nil, c.log.Error("Failed to encode request body", err)
		}
		body = bytes.NewReader(encoded)
		contentType = "application/json"
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, c.log.Error("Failed to build request", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	if token, ok := TokenFromContext(ctx); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn("No response from backend for %s %s: %v", method, path, err)
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}

	var env envelope
	decodeErr := json.Unmarshal(raw, &env)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		message := fallbackMessage
		if decodeErr == nil && env.Message != "" {
			message = env.Message
		}
		return nil, &RequestError{
			Message:    message,
			StatusCode: resp.StatusCode,
			Errors:     env.Errors,
		}
	}

	// A 2xx with a body we cannot parse is still a failed request.
	if decodeErr != nil {
		return nil, &RequestError{Message: fallbackMessage, StatusCode: resp.StatusCode}
	}

	return env.Data, nil
}

// Request performs a call and decodes the envelope's data field into T.
func Request[T any](ctx context.Context, c *Client, method, path string, opts *RequestOptions) (*T, error) {
	data, err := c.Do(ctx, method, path, opts)
	if err != nil {
		return nil, err
	}
	var out T
	if len(data) > 0 && string(data) != "null" {
		if err := json.Unmarshal(data, &out); err != nil {
			return nil, &RequestError{Message: fallbackMessage, StatusCode: http.StatusOK}
		}
	}
	return &out, nil
}
