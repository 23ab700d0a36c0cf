package connectors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrResponseTooLarge indicates a response body exceeded the client's limit.
var ErrResponseTooLarge = errors.New("response too large")

// APIError represents a non-success upstream response.
type APIError struct {
	Service    Service
	StatusCode int
	URL        string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: API error %d (URL: %s)", e.Service, e.StatusCode, e.URL)
}

// IsTransient reports whether the request may succeed when retried.
func IsTransient(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode >= http.StatusInternalServerError
	}
	return false
}
