package errors

import (
	"errors"
	"fmt"
)

// Common error types for the SchoolGest client
var (
	// Session errors
	ErrNotAuthenticated    = errors.New("not authenticated")
	ErrInvalidAuthResponse = errors.New("invalid auth response: missing user")
	ErrMissingRole         = errors.New("user has no role")

	// Token errors
	ErrInvalidToken   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token expired")
	ErrNoRefreshToken = errors.New("no refresh token stored")
	ErrRefreshFailed  = errors.New("token refresh failed")

	// Transport errors
	ErrBodyNotReplayable = errors.New("request body cannot be replayed")

	// General errors
	ErrValidation = errors.New("validation failed")
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
