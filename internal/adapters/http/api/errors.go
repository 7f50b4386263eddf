package api

import "errors"

// Sentinel kinds for API errors. Their messages are what clients see.
var (
	ErrBadRequest = errors.New("invalid request body")
	ErrDuplicate  = errors.New("resource already exists")
	ErrNotFound   = errors.New("resource not found")
	ErrInternal   = errors.New("internal server error")
	ErrNoToken    = errors.New("no token provided")
	ErrBadToken   = errors.New("invalid token")
)
