package api

import (
	"fmt"
)

// APIError is a custom error type for transport errors
type APIError string

// Error implements the error interface
func (e APIError) Error() string {
	return string(e)
}

const (
	ErrEmptyEndpoint APIError = "endpoint cannot be empty"
	ErrBadBaseURL    APIError = "base URL must be an absolute http(s) URL"
)

// StatusError is returned when the server answers with a non-2xx status
type StatusError struct {
	StatusCode int
	Status     string

	// Body is the raw response body, useful for the server's error detail
	Body []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("API returned non-2xx status: %s", e.Status)
}
