// Package apperr defines the error taxonomy shared by all modules: every
// error that crosses a service boundary is classified as validation,
// unauthorized, not-found, conflict or internal, and the HTTP layer maps the
// class to a status code without inspecting messages.
package apperr

import (
	"database/sql"
	stderrors "errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/pkg/errors"
)

// Kind classifies an error for the transport layer.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindUnauthorized
	KindNotFound
	KindConflict
)

// Error carries a kind, a caller-safe message, and an optional wrapped cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func Validation(format string, args ...interface{}) error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func Unauthorized(format string, args ...interface{}) error {
	return &Error{Kind: KindUnauthorized, Message: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...interface{}) error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...interface{}) error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

// Internal wraps err with a caller-safe message. The cause is logged, never
// returned to the client.
func Internal(err error, msg string) error {
	return &Error{Kind: KindInternal, Message: msg, Err: errors.WithStack(err)}
}

// KindOf walks the chain and returns the classification of err.
// Unclassified errors are internal.
func KindOf(err error) Kind {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Message returns the caller-safe message for err. Internal causes are
// replaced by a generic message.
func Message(err error) string {
	var e *Error
	if stderrors.As(err, &e) && e.Kind != KindInternal {
		return e.Message
	}
	return "internal error"
}

// Postgres error codes translated at the repository boundary.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

// FromDB translates store-level errors into taxonomy errors so repositories
// never leak driver codes: no rows becomes not-found, unique and foreign-key
// violations become conflicts, everything else is internal.
func FromDB(err error, entity string) error {
	if err == nil {
		return nil
	}
	if stderrors.Is(err, sql.ErrNoRows) {
		return NotFound("%s not found", entity)
	}
	var pqErr *pq.Error
	if stderrors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case pgUniqueViolation:
			return Conflict("%s already exists", entity)
		case pgForeignKeyViolation:
			return Conflict("%s is referenced by other records", entity)
		case pgCheckViolation:
			return Conflict("%s violates a data constraint", entity)
		}
	}
	return Internal(err, fmt.Sprintf("%s store error", entity))
}
