package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// ErrMalformedResponse indicates the server returned a body outside the
// documented contract for the endpoint. Surfaced instead of letting a
// missing field propagate as a zero value.
var ErrMalformedResponse = errors.New("malformed response")

// Error is a non-2xx response from the Athenaeum API. The server reports
// validation failures as a map of field name to messages; anything else
// carries a single detail message.
type Error struct {
	StatusCode  int
	Message     string
	FieldErrors map[string][]string
}

func (e *Error) Error() string {
	if len(e.FieldErrors) > 0 {
		fields := make([]string, 0, len(e.FieldErrors))
		for field, messages := range e.FieldErrors {
			fields = append(fields, fmt.Sprintf("%s: %s", field, strings.Join(messages, "; ")))
		}
		sort.Strings(fields)
		return fmt.Sprintf("api error %d: %s", e.StatusCode, strings.Join(fields, ", "))
	}
	if e.Message != "" {
		return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api error %d", e.StatusCode)
}

// Unauthorized reports whether the server rejected the request's
// credentials (HTTP 401).
func (e *Error) Unauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized
}

// StatusCode returns the HTTP status carried by err when err is an API
// error, and 0 otherwise.
func StatusCode(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// FieldErrors returns the per-field validation messages carried by err, or
// nil when err is not an API validation error.
func FieldErrors(err error) map[string][]string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.FieldErrors
	}
	return nil
}

// newError builds an *Error from a response body. The backend reports
// errors either as {"detail": "message"} or as {"field": ["msg", ...]};
// both shapes are folded into one Error value. An undecodable body still
// yields an Error carrying the status code.
func newError(statusCode int, body []byte) *Error {
	apiErr := &Error{StatusCode: statusCode}

	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		apiErr.Message = http.StatusText(statusCode)
		return apiErr
	}

	for field, value := range payload {
		switch v := value.(type) {
		case string:
			if field == "detail" {
				apiErr.Message = v
				continue
			}
			apiErr.addFieldError(field, v)
		case []any:
			for _, item := range v {
				if msg, ok := item.(string); ok {
					apiErr.addFieldError(field, msg)
				}
			}
		}
	}

	if apiErr.Message == "" && len(apiErr.FieldErrors) == 0 {
		apiErr.Message = http.StatusText(statusCode)
	}
	return apiErr
}

func (e *Error) addFieldError(field, message string) {
	if e.FieldErrors == nil {
		e.FieldErrors = make(map[string][]string)
	}
	e.FieldErrors[field] = append(e.FieldErrors[field], message)
}
