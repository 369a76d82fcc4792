package backend

import (
	"errors"
	"fmt"
)

// TransportError reports a network failure or an unreadable response.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("could not reach backend (%s): %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// RemoteError is an application error reported by the backend.
// Only the first GraphQL error message is kept.
type RemoteError struct {
	Op      string
	Message string
}

func (e *RemoteError) Error() string { return e.Message }

// IsRemote reports whether err is, or wraps, a RemoteError.
func IsRemote(err error) bool {
	var re *RemoteError
	return errors.As(err, &re)
}

// IsTransport reports whether err is, or wraps, a TransportError.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}
