package errors

import (
	"errors"
	"fmt"
)

// Common error types for the proxy
var (
	// Credential / token-exchange errors
	ErrMissingCredentials     = errors.New("missing google credentials")
	ErrTokenEndpoint          = errors.New("token endpoint error")
	ErrMalformedTokenResponse = errors.New("malformed token response")

	// Login / session errors
	ErrSessionNotFound = errors.New("session not found")

	// General errors
	ErrInvalidRequest = errors.New("invalid request")
	ErrInternal       = errors.New("internal error")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
