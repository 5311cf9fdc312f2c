package places

import (
	"errors"
	"fmt"
)

// ErrMissingAPIKey is returned by every call when no API key is configured
var ErrMissingAPIKey = errors.New("maps API key is not configured")

// APIError represents a failed call to the Maps web services. Status holds the
// status field of a decoded response body; HTTPStatus is set when the service
// answered with a non-200 code.
type APIError struct {
	Endpoint   string
	Status     string
	HTTPStatus int
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("maps API error: %s", e.Endpoint)
	if e.Status != "" {
		msg += fmt.Sprintf(": status %s", e.Status)
	}
	if e.HTTPStatus != 0 {
		msg += fmt.Sprintf(": HTTP %d", e.HTTPStatus)
	}
	if e.Message != "" {
		msg += fmt.Sprintf(": %s", e.Message)
	}
	if e.Err != nil {
		msg += fmt.Sprintf(": %v", e.Err)
	}
	return msg
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// IsStatusError reports whether err is a well-formed response whose status was
// not OK, as opposed to a transport or HTTP failure
func IsStatusError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status != ""
}

func newAPIError(endpoint, status, message string, err error) *APIError {
	return &APIError{
		Endpoint: endpoint,
		Status:   status,
		Message:  message,
		Err:      err,
	}
}
