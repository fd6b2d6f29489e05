// Package common defines shared constants and sentinel errors used across
// the files-manager components. Callers should use errors.Is to match
// these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Validation errors (missing fields, bad kind, bad parent).
	ErrorValidation = errors.New("validation error")

	// Backend failures (cache or durable store call failed). These are
	// retryable from the caller's point of view.
	ErrorTransientStorage = errors.New("transient storage error")
)
