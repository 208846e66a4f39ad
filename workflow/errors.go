// workflow/errors.go
package workflow

import "fmt"

// Kind classifies a workflow failure so the HTTP boundary can pick a status
// code without inspecting error strings.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindAuth
	KindForbidden
	KindNotFound
	KindConflict
)

type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

func errValidation(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Msg: fmt.Sprintf(format, args...)}
}

func errForbidden(format string, args ...interface{}) *Error {
	return &Error{Kind: KindForbidden, Msg: fmt.Sprintf(format, args...)}
}

func errNotFound(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Msg: fmt.Sprintf(format, args...)}
}

func errConflict(format string, args ...interface{}) *Error {
	return &Error{Kind: KindConflict, Msg: fmt.Sprintf(format, args...)}
}

func errInternal(msg string, err error) *Error {
	return &Error{Kind: KindInternal, Msg: msg, Err: err}
}

// KindOf returns the taxonomy kind for err. Anything that is not a workflow
// error counts as internal.
func KindOf(err error) Kind {
	if we, ok := err.(*Error); ok {
		return we.Kind
	}
	return KindInternal
}
