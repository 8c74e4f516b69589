package cards

import (
	"errors"
	"fmt"
)

// ErrInternal marks failures of the store itself (connection loss, bad
// result shapes, query errors). Callers check it with errors.Is.
var ErrInternal = errors.New("internal server error")

// NotFoundError reports that a requested card does not exist, or exists
// but cannot serve the request (e.g. it has no embedding). It is a normal
// outcome of a lookup, not a store failure.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("not found: %s", e.Resource)
}

// NotFound builds a NotFoundError with a formatted resource description.
func NotFound(format string, args ...interface{}) error {
	return &NotFoundError{Resource: fmt.Sprintf(format, args...)}
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// internalErr wraps a store failure so errors.Is(err, ErrInternal) holds
// while the cause stays visible in the message.
func internalErr(err error) error {
	return fmt.Errorf("%w: %v", ErrInternal, err)
}
