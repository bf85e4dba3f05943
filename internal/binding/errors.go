package binding

import (
	"errors"
	"fmt"
)

var (
	// ErrArgument matches every *ArgumentError via errors.Is.
	ErrArgument = errors.New("argument error")

	// ErrUnknownFunction is returned when a name is not in the registry.
	ErrUnknownFunction = errors.New("unknown function")
)

// ArgumentError reports a call rejected at the binding boundary.
type ArgumentError struct {
	// Func is the entry point name.
	Func string
	// Position is the 1-based argument index, or 0 when the arity is wrong.
	Position int
	// Want describes the accepted value.
	Want string
	// Got describes what the caller passed: a type name, or the argument
	// count for arity errors.
	Got string
}

// NewArityError returns the error for a call with n arguments.
func NewArityError(fn string, n int) *ArgumentError {
	return &ArgumentError{
		Func: fn,
		Want: fmt.Sprintf("%d arguments", Arity),
		Got:  fmt.Sprintf("%d", n),
	}
}

// NewTypeError returns the error for argument pos (1-based) having type got.
func NewTypeError(fn string, pos int, got string) *ArgumentError {
	return &ArgumentError{
		Func:     fn,
		Position: pos,
		Want:     "a number",
		Got:      got,
	}
}

func (e *ArgumentError) Error() string {
	if e.Position == 0 {
		return fmt.Sprintf("%s: expected %s, got %s", e.Func, e.Want, e.Got)
	}
	return fmt.Sprintf("%s: argument %d must be %s, not %s", e.Func, e.Position, e.Want, e.Got)
}

// Is reports whether target is ErrArgument.
func (e *ArgumentError) Is(target error) bool {
	return target == ErrArgument
}

// IsArgumentError reports whether err is or wraps an *ArgumentError.
func IsArgumentError(err error) bool {
	var argErr *ArgumentError
	return errors.As(err, &argErr)
}
