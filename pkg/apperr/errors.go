// Package apperr defines the error taxonomy shared by repositories, services and handlers.
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindConflict
	KindNotFound
	KindAuth
	KindDependency
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindNotFound:
		return "not_found"
	case KindAuth:
		return "auth"
	case KindDependency:
		return "dependency"
	default:
		return "internal"
	}
}

// Causes carried by auth errors. Handlers tell 401/400/403 apart with errors.Is.
var (
	ErrAuthenticationRequired  = errors.New("authentication required")
	ErrPermissionDenied        = errors.New("permission denied")
	ErrInvalidConfirmationCode = errors.New("invalid confirmation code")
)

type Error struct {
	Kind    Kind
	Op      string
	Message string
	Fields  map[string]string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Err != nil && e.Message != "" {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Validation(op, message string, fields map[string]string) error {
	return &Error{Kind: KindValidation, Op: op, Message: message, Fields: fields}
}

func Conflict(op, message string) error {
	return &Error{Kind: KindConflict, Op: op, Message: message}
}

func NotFound(op, message string) error {
	return &Error{Kind: KindNotFound, Op: op, Message: message}
}

// Auth wraps one of the auth causes above.
func Auth(op string, cause error) error {
	return &Error{Kind: KindAuth, Op: op, Err: cause}
}

func Dependency(op, message string, err error) error {
	return &Error{Kind: KindDependency, Op: op, Message: message, Err: err}
}

func Internal(op string, err error) error {
	return &Error{Kind: KindInternal, Op: op, Err: err}
}

// KindOf reports the kind of the first *Error in err's chain, KindInternal otherwise.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// FieldsOf returns validation field messages, if any.
func FieldsOf(err error) map[string]string {
	var e *Error
	if errors.As(err, &e) {
		return e.Fields
	}
	return nil
}

// MessageOf returns the client-facing message of err without the op prefix.
func MessageOf(err error) string {
	var e *Error
	if !errors.As(err, &e) || e.Kind == KindInternal {
		return "internal server error"
	}
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Kind.String()
}

func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}
