package station

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyName            = errors.New("station name is required")
	ErrInsufficientStations = errors.New("at least two stations are required")
	ErrInvalidCoordinates   = errors.New("invalid station coordinates")
)

// NotFoundError is returned when no location could be found for a station name
type NotFoundError struct {
	Name string
	Err  error
}

func (e *NotFoundError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("station not found: %s: %v", e.Name, e.Err)
	}
	return fmt.Sprintf("station not found: %s", e.Name)
}

func (e *NotFoundError) Unwrap() error {
	return e.Err
}
