package errors

import (
	"encoding/json"
	"fmt"
)

// Code classifies an oracle failure
type Code string

const (
	Internal           Code = "Internal"
	FieldNotFound      Code = "FieldNotFound"
	TypeMismatch       Code = "TypeMismatch"
	UndefinedAggregate Code = "UndefinedAggregate"
	InvalidArgument    Code = "InvalidArgument"
	SourceLoadFailure  Code = "SourceLoadFailure"
)

// Error is a custom error
type Error struct {
	Code     Code     `json:"code"`
	Messages []string `json:"messages"`
	Err      error    `json:"err,omitempty"`
}

// Error returns the Error as a json string
func (e *Error) Error() string {
	if e.Code == "" {
		e.Code = Internal
	}
	type plain struct {
		Code     Code     `json:"code"`
		Messages []string `json:"messages"`
		Err      string   `json:"err,omitempty"`
	}
	p := plain{Code: e.Code, Messages: e.Messages}
	if e.Err != nil && e.Err != error(e) {
		p.Err = e.Err.Error()
	}
	bits, _ := json.Marshal(p)
	return string(bits)
}

// Unwrap returns the underlying error if one exists
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a new error with the given code and message
func New(code Code, msg string, args ...any) error {
	return &Error{
		Code:     code,
		Messages: []string{fmt.Sprintf(msg, args...)},
	}
}

// Extract extracts the custom Error from the given error
func Extract(err error) *Error {
	e, ok := err.(*Error)
	if !ok {
		return &Error{
			Code:     "",
			Messages: nil,
			Err:      err,
		}
	}
	return e
}

// Is returns true if the error is an Error with the given code
func Is(err error, code Code) bool {
	if err == nil {
		return false
	}
	return Extract(err).Code == code
}

// Wrap wraps the given error and returns a new one. Wrapping a nil error returns nil.
// An Error is copied before its messages grow, so errors shared between goroutines are never mutated.
func Wrap(err error, code Code, msg string, args ...any) error {
	if err == nil {
		return nil
	}
	var e *Error
	if existing, ok := err.(*Error); ok {
		e = &Error{
			Code:     existing.Code,
			Messages: append([]string(nil), existing.Messages...),
			Err:      existing.Err,
		}
	} else {
		e = &Error{Err: err}
	}
	if code != "" {
		e.Code = code
	}
	if msg != "" {
		e.Messages = append(e.Messages, fmt.Sprintf(msg, args...))
	}
	return e
}
