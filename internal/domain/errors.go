package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain operations
var (
	// ErrServerOffline indicates the TISSUE+ server is unreachable
	ErrServerOffline = errors.New("server is unreachable")

	// ErrAuthFailed indicates authentication failed
	ErrAuthFailed = errors.New("authentication token is invalid")

	// ErrNotConfigured indicates the server URL or token is missing
	ErrNotConfigured = errors.New("server is not configured")
)

// APIError is returned when the server answers with a non-success reply
type APIError struct {
	Status  int    // HTTP status code
	Message string // Message from the response envelope, if any
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned status %d", e.Status)
	}
	return fmt.Sprintf("server returned status %d: %s", e.Status, e.Message)
}
