package core

import (
	"errors"
	"fmt"
)

// Errors returned for admission-time argument mistakes. These are
// distinct from the silent rejections the book makes elsewhere
// (duplicate id, FAK no-cross, unknown id) which return an empty
// result rather than an error.
var (
	ErrInvalidQuantity = errors.New("invalid quantity")
)

// InvariantError indicates the core's internal state has diverged from
// its documented invariants — a bug in the core, never an expected
// outcome of valid caller input. Implementations should treat it as
// unrecoverable for the instrument it was raised against.
type InvariantError struct {
	msg string
}

func (e *InvariantError) Error() string { return e.msg }

func panicInvariant(format string, args ...any) {
	panic(&InvariantError{msg: fmt.Sprintf(format, args...)})
}
