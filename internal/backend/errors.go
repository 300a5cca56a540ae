package backend

import "errors"

// Fallback message when a failure response carries no usable message.
const fallbackMessage = "Request failed"

// networkMessage is intentionally generic; transport failures carry no
// backend payload to extract from.
const networkMessage = "Network error. Please try again."

// ErrNotFound marks a 404 from the backend so callers can branch with
// errors.Is without inspecting status codes.
var ErrNotFound = errors.New("resource not found")

// AuthenticationError is a credential rejection from the backend auth
// endpoint. Message is surfaced to the user verbatim.
type AuthenticationError struct {
	Message string
}

func (e *AuthenticationError) Error() string {
	return e.Message
}

// RequestError is any non-2xx backend response. Message comes from the error
// envelope when present.
type RequestError struct {
	Message    string
	StatusCode int
	Errors     map[string]string
}

func (e *RequestError) Error() string {
	return e.Message
}

func (e *RequestError) Unwrap() error {
	if e.StatusCode == 404 {
		return ErrNotFound
	}
	return nil
}

// NetworkError means no response was reachable at all.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return networkMessage
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
