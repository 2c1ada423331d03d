package client

import (
	"errors"
	"fmt"
)

var (
	// ErrSessionExpired means the refresh token was rejected; the caller must
	// re-authenticate.
	ErrSessionExpired = errors.New("session expired, please log in again")
	// ErrNotAuthenticated means no token pair is stored.
	ErrNotAuthenticated = errors.New("not authenticated")
)

// APIError is a non-2xx response from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// NetworkError is a transport-level failure: the request never produced an
// HTTP response. Mutation paths treat it as a trigger for rollback or
// offline queueing.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return "network error: " + e.Err.Error()
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// IsNetworkError reports whether err is a transport failure rather than a
// server rejection.
func IsNetworkError(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}
