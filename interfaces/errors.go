package interfaces

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidLocation is returned when the descriptor location is nil or
	// empty. It signals a caller bug and is never logged.
	ErrInvalidLocation = errors.New("device descriptor location can't be empty")

	// ErrTransport matches every *TransportError with errors.Is.
	ErrTransport = errors.New("device descriptor transport failure")
)

// Transport failure operations.
const (
	OpConnect        = "connect"
	OpReadBody       = "read-body"
	OpApplicationURL = "application-url"
)

// TransportError reports a failure the caller has to handle: the descriptor
// endpoint is unreachable, or the device answered with a malformed
// Application-URL.
type TransportError struct {
	Op  string
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}
