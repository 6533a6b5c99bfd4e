package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrNotFound indicates the requested resource does not exist
	ErrNotFound = errors.New("resource not found")

	// ErrServerOffline indicates the API server is unreachable
	ErrServerOffline = errors.New("api server is unreachable")

	// ErrAuthFailed indicates the bearer token was rejected
	ErrAuthFailed = errors.New("authentication token is invalid")

	// ErrPendingRecord indicates an operation needs a saved record but got a placeholder
	ErrPendingRecord = errors.New("record has not been saved yet")
)
