package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrUnavailable       = errors.New("server unavailable")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrMalformedResponse = errors.New("malformed server response")
)

// APIError is the normalized form of a failed call: the server's error
// payload replaces the raw transport failure.
type APIError struct {
	StatusCode int
	Message    string
	Payload    map[string]any
}

func (e *APIError) Error() string {
	return e.Message
}

// Is lets callers match auth failures with errors.Is(err, ErrUnauthorized).
func (e *APIError) Is(target error) bool {
	if target == ErrUnauthorized {
		return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
	}
	return false
}

// NormalizeError builds an APIError from a failure status and body.
//
// The message is taken from error.message, then from a string error, then
// from a string message (the backend's {status, message} reply), and falls
// back to the HTTP status text.
func NormalizeError(status int, body []byte) *APIError {
	e := &APIError{StatusCode: status}

	var doc map[string]any
	if err := json.Unmarshal(body, &doc); err == nil {
		e.Payload = doc
		switch v := doc["error"].(type) {
		case map[string]any:
			e.Payload = v
			e.Message, _ = v["message"].(string)
		case string:
			e.Message = v
		}
		if e.Message == "" {
			e.Message, _ = doc["message"].(string)
		}
	}

	if e.Message == "" {
		e.Message = http.StatusText(status)
	}
	if e.Message == "" {
		e.Message = fmt.Sprintf("request failed with status %d", status)
	}
	return e
}
