package mumhash

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownVariant = errors.New("unknown hasher variant")
	ErrNoEntropy      = errors.New("random seed unavailable")
)

// OpError records the operation and the offending name behind a failure.
type OpError struct {
	Op    string
	Name  string
	Cause error
}

func (e *OpError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("mumhash %s %q: %v", e.Op, e.Name, e.Cause)
	}
	return fmt.Sprintf("mumhash %s: %v", e.Op, e.Cause)
}

func (e *OpError) Unwrap() error {
	return e.Cause
}

func newOpError(op, name string, cause error) *OpError {
	return &OpError{
		Op:    op,
		Name:  name,
		Cause: cause,
	}
}
