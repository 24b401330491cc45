package models

import (
	"errors"
	"fmt"
)

// ErrUnauthorized is returned when a request carries no valid credential.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden is returned when the caller's role does not permit the operation.
var ErrForbidden = errors.New("forbidden")

// ValidationError describes malformed or incomplete input. Nothing is
// persisted when one is returned.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NotFoundError names the resource and identifier that failed to resolve.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s with id %s not found", e.Resource, e.ID)
}
