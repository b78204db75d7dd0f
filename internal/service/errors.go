package service

import (
	"errors"
	"strings"
)

// Domain errors mapped to HTTP statuses by the handlers.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenRevoked       = errors.New("token revoked")
	ErrForbidden          = errors.New("forbidden")
	ErrCustomerExists     = errors.New("customer already exists")
	ErrCustomerNotFound   = errors.New("customer not found")
	ErrUnknownTable       = errors.New("unknown table")
	ErrInvalidTimeRange   = errors.New("invalid time range: from must be <= to")
	ErrInvalidInput       = errors.New("invalid input")
)

// MissingFieldsError lists required payload fields that were absent or empty.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return "missing required field(s): " + strings.Join(e.Fields, ", ")
}
