package services

import "errors"

// Failure taxonomy shared by all services. Controllers translate these to HTTP
// status codes; everything else is treated as an unexpected store failure.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrInvalidState = errors.New("invalid state")
)
