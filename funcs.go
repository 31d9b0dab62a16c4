package nsduck

import (
	"context"
	"fmt"

	"github.com/nsqlite/nsduck/binding"
	"github.com/nsqlite/nsduck/rowset"
)

// The functions below mirror the Session methods for callers that prefer
// passing the Session explicitly. They call the methods, so both styles
// share one state machine.

// Open returns a Session for path with its database opened but not yet
// connected.
func Open(ctx context.Context, path string, options Options, opts ...Option) (*Session, error) {
	s := New(path, options, opts...)
	if err := s.Open(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Connect connects s.
func Connect(ctx context.Context, s *Session) error {
	if s == nil {
		return fmt.Errorf("%w: %w: nil session", ErrConnect, ErrInvalidHandle)
	}
	return s.Connect(ctx)
}

// Query runs sql on s.
func Query(ctx context.Context, s *Session, sql string) (rowset.ResultSet, error) {
	if s == nil {
		return rowset.ResultSet{}, fmt.Errorf("%w: nil session", ErrInvalidHandle)
	}
	return s.Query(ctx, sql)
}

// Exec runs sql on s discarding rows.
func Exec(ctx context.Context, s *Session, sql string) (binding.ExecResult, error) {
	if s == nil {
		return binding.ExecResult{}, fmt.Errorf("%w: nil session", ErrInvalidHandle)
	}
	return s.Exec(ctx, sql)
}

// Disconnect disconnects s.
func Disconnect(ctx context.Context, s *Session) error {
	if s == nil {
		return fmt.Errorf("%w: %w: nil session", ErrDisconnect, ErrInvalidHandle)
	}
	return s.Disconnect(ctx)
}

// Close closes s.
func Close(ctx context.Context, s *Session) error {
	if s == nil {
		return fmt.Errorf("%w: %w: nil session", ErrClose, ErrInvalidHandle)
	}
	return s.Close(ctx)
}
