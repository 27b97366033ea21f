package domain

import (
	"errors"
	"fmt"
	"strings"
)

type ErrorKind string

const (
	ErrKindNotFound     ErrorKind = "NOT_FOUND"
	ErrKindInvalidState ErrorKind = "INVALID_STATE"
	ErrKindUnauthorized ErrorKind = "UNAUTHORIZED"
	ErrKindValidation   ErrorKind = "VALIDATION_FAILED"
	ErrKindRetryBlocked ErrorKind = "RETRY_BLOCKED"
	ErrKindGateway      ErrorKind = "GATEWAY_ERROR"
)

// Error is the typed failure every usecase returns. Reasons is populated
// for RETRY_BLOCKED so callers get the itemized blockers, not just a flag.
type Error struct {
	Kind    ErrorKind
	Message string
	Reasons []string
	Err     error
}

func (e *Error) Error() string {
	if len(e.Reasons) > 0 {
		return fmt.Sprintf("%s: %s (%s)", e.Kind, e.Message, strings.Join(e.Reasons, "; "))
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func NewNotFound(format string, args ...any) *Error {
	return &Error{Kind: ErrKindNotFound, Message: fmt.Sprintf(format, args...)}
}

func NewInvalidState(format string, args ...any) *Error {
	return &Error{Kind: ErrKindInvalidState, Message: fmt.Sprintf(format, args...)}
}

func NewUnauthorized(format string, args ...any) *Error {
	return &Error{Kind: ErrKindUnauthorized, Message: fmt.Sprintf(format, args...)}
}

func NewValidation(format string, args ...any) *Error {
	return &Error{Kind: ErrKindValidation, Message: fmt.Sprintf(format, args...)}
}

func NewRetryBlocked(reasons []string) *Error {
	return &Error{Kind: ErrKindRetryBlocked, Message: "refund cannot be retried", Reasons: reasons}
}

func NewGatewayError(err error) *Error {
	return &Error{Kind: ErrKindGateway, Message: err.Error(), Err: err}
}

// KindOf reports the taxonomy kind of err, or "" for untyped errors.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}

func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}
