package backend

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnauthorized is returned for any 401 response. The transport layer does
// not clear session state itself; callers decide how to react.
var ErrUnauthorized = errors.New("backend: unauthorized")

// APIError is a structured rejection from the backend (4xx/5xx with a JSON
// body). The backend reports either a plain message, a title, or a
// field-error map; Error flattens whichever is present into one display
// string.
type APIError struct {
	StatusCode int
	Message    string              `json:"message"`
	Title      string              `json:"title"`
	Errors     map[string][]string `json:"errors"`
}

func (e *APIError) Error() string {
	if len(e.Errors) > 0 {
		fields := make([]string, 0, len(e.Errors))
		for f := range e.Errors {
			fields = append(fields, f)
		}
		sort.Strings(fields)

		var parts []string
		for _, f := range fields {
			parts = append(parts, e.Errors[f]...)
		}
		return strings.Join(parts, " ")
	}
	if e.Message != "" {
		return e.Message
	}
	if e.Title != "" {
		return e.Title
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

// IsInactiveAccount reports whether err is a backend rejection for a
// deactivated account. Login surfaces these with an "inactive" message.
func IsInactiveAccount(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return strings.Contains(strings.ToLower(apiErr.Message), "inactive")
}
