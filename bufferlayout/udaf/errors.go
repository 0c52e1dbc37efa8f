package udaf

import (
	"errors"
	"fmt"
)

// Sentinel errors for host binding failures.
// Use errors.Is() to check for these errors.
var (
	// ErrUnknownFunction indicates no function is registered under a name.
	ErrUnknownFunction = errors.New("unknown aggregation function")

	// ErrDuplicateFunction indicates a qualified name is already registered.
	ErrDuplicateFunction = errors.New("aggregation function already registered")

	// ErrInvalidFunction indicates a Function descriptor is incomplete.
	ErrInvalidFunction = errors.New("invalid aggregation function")

	// ErrUnknownInstance indicates a session handle was never opened or has
	// already been finalized or discarded.
	ErrUnknownInstance = errors.New("unknown aggregation instance")

	// ErrHostType indicates the host supplied a value that cannot be bound
	// to the declared parameter type. Returned errors are *TypeError.
	ErrHostType = errors.New("host type mismatch")

	// ErrArity indicates the host supplied the wrong number of arguments.
	ErrArity = errors.New("wrong number of arguments")

	// ErrNegativeOffset indicates a negative offset was rejected by
	// BindingOptions.RejectNegative.
	ErrNegativeOffset = errors.New("negative offset")
)

// TypeError describes a host value that does not fit a parameter.
// It matches ErrHostType with errors.Is.
type TypeError struct {
	Param  string // parameter name
	Want   Type   // declared parameter type
	Got    string // Go type of the supplied value, or "null"
	Reason string // optional detail, e.g. "out of range"
}

func (e *TypeError) Error() string {
	msg := fmt.Sprintf("parameter %q: cannot bind %s to %s", e.Param, e.Got, e.Want)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

// Is implements errors.Is for sentinel error matching.
func (e *TypeError) Is(target error) bool {
	return target == ErrHostType
}
