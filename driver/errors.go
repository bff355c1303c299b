package driver

import (
	"errors"
	"fmt"
)

// DriverError represents a failed request reported by the SPARQL endpoint.
type DriverError struct {
	// StatusCode is the HTTP status returned by the endpoint.
	StatusCode int
	// Endpoint is the URL the request was sent to.
	Endpoint string
	// Message is the response body, trimmed.
	Message string
}

func (e *DriverError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("driver: %s returned %d", e.Endpoint, e.StatusCode)
	}
	return fmt.Sprintf("driver: %s returned %d: %s", e.Endpoint, e.StatusCode, e.Message)
}

var (
	// ErrNotConnected is returned when an operation is attempted on a closed driver.
	ErrNotConnected = errors.New("driver: not connected")
	// ErrUnsupportedResult is returned when a response uses a media type the driver cannot decode.
	ErrUnsupportedResult = errors.New("driver: unsupported result format")
)
