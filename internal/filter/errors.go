package filter

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidFilterPath is returned for paths the engine cannot resolve,
	// such as "a.b.c" or paths with empty segments.
	ErrInvalidFilterPath = errors.New("invalid filter path")

	// ErrInvalidArguments is returned when value types and values do not pair
	// up or exceed the allowed sizes.
	ErrInvalidArguments = errors.New("invalid filter arguments")
)

// Error describes why a filter could not be built.
type Error struct {
	Path   string
	Reason string
	Err    error
}

func (e *Error) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%v: %s", e.Err, e.Reason)
	}
	return fmt.Sprintf("%v %q: %s", e.Err, e.Path, e.Reason)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsInvalidPath reports whether err is an invalid path error.
func IsInvalidPath(err error) bool {
	return errors.Is(err, ErrInvalidFilterPath)
}
