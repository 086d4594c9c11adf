package eval

import (
	"fmt"

	"github.com/you-not-fish/stag/internal/syntax"
)

// Error is an evaluation error.
type Error struct {
	Pos syntax.Pos
	Msg string
	Err error // underlying error from the tag or constant packages, if any
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// ErrorHandler is called for each evaluation error.
type ErrorHandler func(pos syntax.Pos, msg string)

func (ev *Evaluator) errorf(pos syntax.Pos, format string, args ...any) {
	ev.report(&Error{Pos: pos, Msg: fmt.Sprintf(format, args...)})
}

// fail reports err, returned by a tag or constant operation, at pos.
func (ev *Evaluator) fail(pos syntax.Pos, err error) {
	ev.report(&Error{Pos: pos, Msg: err.Error(), Err: err})
}

func (ev *Evaluator) report(err *Error) {
	if ev.errors == 0 {
		ev.first = err
	}
	ev.errors++

	if ev.conf.Error != nil {
		ev.conf.Error(err.Pos, err.Msg)
	}
}
