package domain

import (
	"errors"
	"fmt"
)

var (
	ErrVehicleNotFound = errors.New("vehicle not found")
	ErrRouteNotFound   = errors.New("route not found")
	// ErrRouteNotAssigned means the vehicle exists but carries no route.
	ErrRouteNotAssigned = errors.New("vehicle has no assigned route")
	ErrStopNotFound     = errors.New("stop not found in route")
	ErrNoPosition       = errors.New("no position recorded for vehicle")
	// ErrProvidersUnavailable means every configured routing provider
	// failed. It signals "try again later", not "does not exist".
	ErrProvidersUnavailable = errors.New("all eta providers unavailable")
)

// ValidationError rejects malformed caller input. It is never retried and
// maps to a client error at the boundary.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}
