// Package client is the Go SDK for the smart home backend: a session service
// holding the authenticated state, and a gateway through which every backend
// call travels. Failures surface as one of four typed errors: ValidationError
// (bad input caught before the request is sent), NetworkError (transport
// failure, no response), APIError (the backend reported errors or returned a
// malformed success body), and AuthExpiredError (the session was invalidated
// by a 401 and has already been cleared).
package client

import (
	"errors"
	"fmt"
	"strings"
)

// NetworkError wraps a transport-level failure: the request never produced
// an HTTP response.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error during %s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// APIError carries the error messages reported by the backend, or describes
// a success response that was missing its promised payload.
type APIError struct {
	Status   int
	Messages []string
}

func (e *APIError) Error() string {
	if len(e.Messages) == 0 {
		return fmt.Sprintf("api error (status %d)", e.Status)
	}
	return "api error: " + strings.Join(e.Messages, ", ")
}

// AuthExpiredError signals that the backend rejected the session token. By
// the time a caller sees this error the local session has already been
// cleared; retrying is meaningless until a new login succeeds.
type AuthExpiredError struct{}

func (e *AuthExpiredError) Error() string { return "session expired" }

// IsAuthExpired reports whether err is (or wraps) an AuthExpiredError.
func IsAuthExpired(err error) bool {
	var ae *AuthExpiredError
	return errors.As(err, &ae)
}

// IsNetworkError reports whether err is (or wraps) a NetworkError.
func IsNetworkError(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

// ValidationError lists input problems detected before a request was sent.
// No network traffic happened; the caller fixes the input and retries.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "invalid input: " + strings.Join(e.Messages, "; ")
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
