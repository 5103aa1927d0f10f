package api

import (
	"errors"
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/valyala/fasthttp"
)

// APIError is a non-200 upstream answer reduced to what callers act on: the
// status code, a human-readable message dug out of whatever error envelope
// the endpoint used, and whether the failure is a credential problem.
type APIError struct {
	StatusCode int
	Message    string
	AuthError  bool
}

func (e *APIError) Error() string {
	return fmt.Sprintf("faceit: %s (status %d)", e.Message, e.StatusCode)
}

// messageFields are probed in order; the FACEIT surfaces disagree on where
// the error text lives.
var messageFields = []string{"message", "error_description", "error"}

// authErrorCodes mark credential failures even when they arrive with an
// unexpected status code.
var authErrorCodes = map[string]bool{
	"invalid_token": true,
	"expired_token": true,
	"unauthorized":  true,
}

// decodeBody turns an upstream response into a value. A 200 with an
// undecodable body degrades to the zero value instead of failing: the web
// stats endpoint answers HTML error pages with status 200, and one bad
// strategy must not sink the whole merge. Non-200 responses become APIError.
func decodeBody[T any](status int, body []byte) (*T, error) {
	if status != fasthttp.StatusOK {
		return nil, newAPIError(status, body)
	}
	var out T
	if err := json.Unmarshal(body, &out); err != nil {
		var empty T
		return &empty, nil
	}
	return &out, nil
}

func newAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{
		StatusCode: status,
		AuthError:  status == fasthttp.StatusUnauthorized || status == fasthttp.StatusForbidden,
	}

	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err == nil && payload != nil {
		apiErr.Message = probeMessage(payload)
		if code, ok := probeErrorCode(payload); ok && authErrorCodes[code] {
			apiErr.AuthError = true
		}
	}

	if apiErr.Message == "" {
		text := strings.TrimSpace(string(body))
		if len(text) > 200 {
			text = text[:200]
		}
		apiErr.Message = text
	}
	if apiErr.Message == "" {
		apiErr.Message = strings.ToLower(fasthttp.StatusMessage(status))
	}
	return apiErr
}

func probeMessage(payload map[string]any) string {
	for _, field := range messageFields {
		if v, ok := payload[field].(string); ok && v != "" {
			return v
		}
	}
	// Data API envelope: {"errors": [{"message": ..., "code": ...}]}
	if first, ok := firstErrorEntry(payload); ok {
		for _, field := range messageFields {
			if v, ok := first[field].(string); ok && v != "" {
				return v
			}
		}
	}
	return ""
}

func probeErrorCode(payload map[string]any) (string, bool) {
	for _, field := range []string{"code", "error_code"} {
		if v, ok := payload[field].(string); ok && v != "" {
			return strings.ToLower(v), true
		}
	}
	if v, ok := payload["error"].(string); ok && v != "" {
		return strings.ToLower(v), true
	}
	if first, ok := firstErrorEntry(payload); ok {
		if v, ok := first["code"].(string); ok && v != "" {
			return strings.ToLower(v), true
		}
	}
	return "", false
}

func firstErrorEntry(payload map[string]any) (map[string]any, bool) {
	entries, ok := payload["errors"].([]any)
	if !ok || len(entries) == 0 {
		return nil, false
	}
	first, ok := entries[0].(map[string]any)
	return first, ok
}

// IsAuthError reports whether err is an upstream credential failure.
func IsAuthError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.AuthError
}

// IsNotFound reports whether err is an upstream 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == fasthttp.StatusNotFound
}
