package coc

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError is a non-success response from the API. Reason is the API's short error code
// such as "notFound", "accessDenied" or "inMaintenance".
type APIError struct {
	StatusCode int
	Reason     string
	Message    string
}

func (e *APIError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("API request failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("API request failed with status %d: %s %s", e.StatusCode, e.Reason, e.Message)
}

// Temporary reports whether retrying the same request may succeed
func (e *APIError) Temporary() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= http.StatusInternalServerError
}

// IsNotFound reports whether err is a 404 from the API, e.g. a clan outside league season
func IsNotFound(err error) bool {
	return hasStatus(err, http.StatusNotFound)
}

// IsAccessDenied reports whether err is a 403, e.g. a private war log
func IsAccessDenied(err error) bool {
	return hasStatus(err, http.StatusForbidden)
}

func hasStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == status
}
