package model

import "fmt"

// InvalidError reports a request rejected before any store access: a missing
// required field, a failed type coercion, a disallowed update field, or a bad
// confirmation value. Handlers map it to HTTP 400.
type InvalidError struct {
	Msg string
}

func (e *InvalidError) Error() string {
	return e.Msg
}

// Invalidf builds an InvalidError from a format string.
func Invalidf(format string, args ...any) error {
	return &InvalidError{Msg: fmt.Sprintf(format, args...)}
}

// NotFoundError reports a query that matched nothing. Handlers map it to
// HTTP 404.
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string {
	return e.Msg
}

// NotFoundf builds a NotFoundError from a format string.
func NotFoundf(format string, args ...any) error {
	return &NotFoundError{Msg: fmt.Sprintf(format, args...)}
}
