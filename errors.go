package l3

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by the interpreter wraps exactly one of
// these, test for them with errors.Is.
var (
	ErrParse             = errors.New("parse error")
	ErrUndefinedVariable = errors.New("undefined variable")
	ErrBadProcedure      = errors.New("bad procedure")
	ErrTypeMismatch      = errors.New("type mismatch")
	ErrArgumentMismatch  = errors.New("argument mismatch")
	ErrEmptyProgram      = errors.New("empty program")
	ErrStackExhausted    = errors.New("stack exhausted")
	ErrInterrupted       = errors.New("interrupted")
)

// Position locates a parse error in its source.
type Position struct {
	Name      string
	Line, Col int
}

func (p Position) String() string { return fmt.Sprintf("%s:%d:%d", p.Name, p.Line, p.Col) }

type Error struct {
	Kind error
	Msg  string
	Pos  *Position
}

func (e *Error) Error() string {
	if e.Pos != nil {
		return e.Kind.Error() + ": " + e.Msg + " at " + e.Pos.String()
	}
	return e.Kind.Error() + ": " + e.Msg
}

func (e *Error) Unwrap() error { return e.Kind }

func errorf(kind error, format string, a ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, a...)}
}

type assertable struct{ err error }

// check records the first failed condition; once an error is recorded every
// later check reports false without overwriting it.
func (e *assertable) check(ok bool, kind error, format string, a ...interface{}) bool {
	if e.err == nil && !ok {
		e.err = errorf(kind, format, a...)
	}
	return e.err == nil
}
