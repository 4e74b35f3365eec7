// Package apperr is the error taxonomy services hand to controllers:
// Validation, NotFound, Conflict and Internal, mapped to HTTP status
// codes in one place instead of per call site.
package apperr

import "fmt"

type Kind int

const (
	Validation Kind = iota + 1
	NotFound
	Conflict
	Internal
)

type Error struct {
	Kind    Kind
	Message string
	Field   string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Validationf(format string, args ...any) *Error {
	return &Error{Kind: Validation, Message: fmt.Sprintf(format, args...)}
}

// ValidationField is a validation error tied to a named input field.
func ValidationField(field, format string, args ...any) *Error {
	return &Error{Kind: Validation, Field: field, Message: fmt.Sprintf(format, args...)}
}

func NotFoundf(format string, args ...any) *Error {
	return &Error{Kind: NotFound, Message: fmt.Sprintf(format, args...)}
}

func Conflictf(format string, args ...any) *Error {
	return &Error{Kind: Conflict, Message: fmt.Sprintf(format, args...)}
}

// Internalf wraps an unexpected store-level failure. The message is
// what callers see; err keeps the cause for logs.
func Internalf(err error, format string, args ...any) *Error {
	return &Error{Kind: Internal, Message: fmt.Sprintf(format, args...), Err: err}
}
