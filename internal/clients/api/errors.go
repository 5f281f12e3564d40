package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"

	pkgerrors "github.com/pkg/errors"
)

var (
	ErrSessionExpired = pkgerrors.New("session expired")
	ErrInvalidRequest = pkgerrors.New("invalid request")
)

// APIError is a non-2xx answer of the career API. The server reports either
// {"detail": "..."} or per-field messages like {"email": ["..."]}.
type APIError struct {
	StatusCode int
	Detail     string
	Fields     map[string][]string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("api responded with status %d: %s", e.StatusCode, e.Detail)
	}
	if len(e.Fields) > 0 {
		keys := make([]string, 0, len(e.Fields))
		for key := range e.Fields {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		return fmt.Sprintf("api responded with status %d: %s: %s", e.StatusCode, keys[0], e.Fields[keys[0]][0])
	}
	return fmt.Sprintf("api responded with status %d", e.StatusCode)
}

// Message picks the text to show next to a form: the detail, then the first
// message of the given fields in order, then the fallback.
func (e *APIError) Message(fallback string, fields ...string) string {
	if e.Detail != "" {
		return e.Detail
	}
	for _, field := range fields {
		if messages := e.Fields[field]; len(messages) > 0 {
			return messages[0]
		}
	}
	return fallback
}

func Message(err error, fallback string, fields ...string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message(fallback, fields...)
	}
	return fallback
}

func IsUnauthorized(err error) bool {
	if errors.Is(err, ErrSessionExpired) {
		return true
	}
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

func newAPIError(statusCode int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: statusCode}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return apiErr
	}

	for key, raw := range payload {
		if key == "detail" {
			_ = json.Unmarshal(raw, &apiErr.Detail)
			continue
		}

		var messages []string
		if err := json.Unmarshal(raw, &messages); err != nil {
			var single string
			if err := json.Unmarshal(raw, &single); err != nil {
				continue
			}
			messages = []string{single}
		}
		if len(messages) == 0 {
			continue
		}
		if apiErr.Fields == nil {
			apiErr.Fields = make(map[string][]string)
		}
		apiErr.Fields[key] = messages
	}

	return apiErr
}
