package eventbus

import (
	"errors"
	"fmt"
	"reflect"
)

// Sentinel errors for the dispatch core.
var (
	// ErrInvalidArgument indicates a nil notification, handler, type key or
	// delegate, or a malformed handler method.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInapplicableHandler indicates a handler was offered a notification
	// its declared type does not accept.
	ErrInapplicableHandler = errors.New("inapplicable handler")
)

// ArgumentError describes which argument of which operation was rejected.
// It matches ErrInvalidArgument with errors.Is.
type ArgumentError struct {
	// Op is the operation that rejected the argument (e.g., "publish").
	Op string
	// Arg names the offending argument.
	Arg string
	// Reason explains the rejection.
	Reason string
}

// Error implements the error interface.
func (e *ArgumentError) Error() string {
	return fmt.Sprintf("%s: %s %s: %v", e.Op, e.Arg, e.Reason, ErrInvalidArgument)
}

// Unwrap returns ErrInvalidArgument for errors.Is support.
func (e *ArgumentError) Unwrap() error {
	return ErrInvalidArgument
}

// InapplicableError records the type mismatch between a notification and the
// handler it was dispatched to.
type InapplicableError struct {
	Notification reflect.Type
	Handler      reflect.Type
}

// Error implements the error interface.
func (e *InapplicableError) Error() string {
	return fmt.Sprintf("%v: %v cannot receive %v", ErrInapplicableHandler, e.Handler, e.Notification)
}

// Is reports whether target is ErrInapplicableHandler.
func (e *InapplicableError) Is(target error) bool {
	return target == ErrInapplicableHandler
}

func argumentError(op, arg, reason string) error {
	return &ArgumentError{Op: op, Arg: arg, Reason: reason}
}
