package binding

import (
	"errors"
	"fmt"
)

var (
	// ErrOpen is returned when the engine cannot open or create a database.
	ErrOpen = errors.New("open failed")

	// ErrConnect is returned when a connection cannot be established.
	ErrConnect = errors.New("connect failed")

	// ErrQuery is matched by every *QueryError.
	ErrQuery = errors.New("query failed")

	// ErrInvalidHandle is returned when a released or unset handle is used.
	ErrInvalidHandle = errors.New("invalid handle")

	// ErrNotConnected is returned when a query needs a connection and the
	// handle has none.
	ErrNotConnected = errors.New("not connected")

	// ErrAlreadyClosed is returned by sessions after their terminal close.
	ErrAlreadyClosed = errors.New("already closed")

	// ErrClose is returned when releasing a handle fails.
	ErrClose = errors.New("close failed")

	// ErrDisconnect is returned when releasing a connection fails.
	ErrDisconnect = errors.New("disconnect failed")
)

// QueryError carries the engine diagnostic for a failed statement.
type QueryError struct {
	// SQL is the statement text as submitted.
	SQL string
	// Message is the engine diagnostic, verbatim.
	Message string
	// Err is the underlying driver error, if any.
	Err error
}

func newQueryError(query string, err error) *QueryError {
	return &QueryError{SQL: query, Message: err.Error(), Err: err}
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("%s: %s", ErrQuery, e.Message)
}

// Is makes errors.Is(err, ErrQuery) true for every *QueryError.
func (e *QueryError) Is(target error) bool {
	return target == ErrQuery
}

func (e *QueryError) Unwrap() error {
	return e.Err
}
