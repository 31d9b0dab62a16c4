package nsduck

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/nsqlite/nsduck/binding"
	"github.com/nsqlite/nsduck/internal/util/syncutil"
	"github.com/nsqlite/nsduck/rowset"
	"golang.org/x/sync/semaphore"
)

// Options is the engine configuration of a Session, passed to the engine
// verbatim. For DuckDB these are configuration settings such as
// access_mode, threads or max_memory.
type Options = binding.Options

// Option customizes a Session.
type Option func(*Session)

// WithEngine selects the engine by its registered name. The default is
// binding.DefaultEngine.
func WithEngine(name string) Option {
	return func(s *Session) {
		s.engine = name
	}
}

// WithID overrides the generated Session ID.
func WithID(id string) Option {
	return func(s *Session) {
		s.id = id
	}
}

// Session is one database file plus at most one connection to it.
type Session struct {
	id      string
	path    string
	engine  string
	options Options

	// sem serializes operations: a second caller waits for the first.
	sem   *semaphore.Weighted
	state *syncutil.Atomic[State]
	stats *sessionStats

	// guarded by sem
	handle *binding.Handle
	conn   *binding.Conn
}

// New returns an unopened Session for path. No native resource is acquired
// until Open.
func New(path string, options Options, opts ...Option) *Session {
	s := &Session{
		id:      uuid.NewString(),
		path:    path,
		engine:  binding.DefaultEngine,
		options: options.Clone(),
		sem:     semaphore.NewWeighted(1),
		state:   syncutil.NewAtomic(StateUnopened),
		stats:   newSessionStats(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Create returns a connected Session for path. If connecting fails the
// database is closed again and the connect error is returned; no Session is
// returned on error.
func Create(
	ctx context.Context, path string, options Options, opts ...Option,
) (*Session, error) {
	s := New(path, options, opts...)

	if err := s.Open(ctx); err != nil {
		return nil, err
	}

	if err := s.Connect(ctx); err != nil {
		if closeErr := s.Close(ctx); closeErr != nil {
			return nil, errors.Join(err, closeErr)
		}
		return nil, err
	}

	return s, nil
}

// ID returns the Session identifier.
func (s *Session) ID() string {
	return s.id
}

// Path returns the database path.
func (s *Session) Path() string {
	return s.path
}

// Engine returns the engine name.
func (s *Session) Engine() string {
	return s.engine
}

// Options returns a copy of the engine options.
func (s *Session) Options() Options {
	return s.options.Clone()
}

// State returns the current lifecycle state. It does not wait for an
// operation in progress.
func (s *Session) State() State {
	return s.state.Load()
}

// lock waits for the Session turn. It fails only if ctx ends first, in
// which case nothing was dispatched.
func (s *Session) lock(ctx context.Context) error {
	if err := s.sem.Acquire(ctx, 1); err != nil {
		return fmt.Errorf("waiting for session: %w", err)
	}
	return nil
}

func (s *Session) unlock() {
	s.sem.Release(1)
}

// Open opens the database file. It is valid only on an unopened Session.
func (s *Session) Open(ctx context.Context) error {
	if err := s.lock(ctx); err != nil {
		return err
	}
	defer s.unlock()

	switch s.state.Load() {
	case StateClosed:
		return fmt.Errorf("cannot open session: %w", ErrAlreadyClosed)
	case StateOpened, StateConnected:
		return fmt.Errorf("cannot open session: %w: database is already open", ErrInvalidHandle)
	}

	handle, err := binding.Open(ctx, s.engine, s.path, s.options)
	if err != nil {
		return err
	}

	s.handle = handle
	s.state.Store(StateOpened)
	return nil
}

// Connect establishes the connection. The Session must be opened and not
// yet connected.
func (s *Session) Connect(ctx context.Context) error {
	if err := s.lock(ctx); err != nil {
		return err
	}
	defer s.unlock()

	switch s.state.Load() {
	case StateClosed:
		return fmt.Errorf("cannot connect session: %w", ErrAlreadyClosed)
	case StateUnopened:
		return fmt.Errorf("%w: %w: database is not open", ErrConnect, ErrInvalidHandle)
	case StateConnected:
		return fmt.Errorf("%w: session is already connected", ErrConnect)
	}

	conn, err := binding.Connect(ctx, s.handle)
	if err != nil {
		return err
	}

	s.conn = conn
	s.state.Store(StateConnected)
	return nil
}

// checkConnected returns the misuse error for statements outside the
// connected state. The caller must hold the lock.
func (s *Session) checkConnected(op string) error {
	switch s.state.Load() {
	case StateConnected:
		return nil
	case StateClosed:
		return fmt.Errorf("cannot %s: %w", op, ErrAlreadyClosed)
	}
	return fmt.Errorf("cannot %s: %w", op, ErrNotConnected)
}

// Query runs sql and returns every row in engine order. A failed query
// returns a *QueryError and leaves the Session connected.
func (s *Session) Query(ctx context.Context, sql string) (rowset.ResultSet, error) {
	if err := s.lock(ctx); err != nil {
		return rowset.ResultSet{}, err
	}
	defer s.unlock()

	if err := s.checkConnected("query"); err != nil {
		return rowset.ResultSet{}, err
	}

	start := time.Now()
	result, err := binding.Query(ctx, s.handle, sql)
	s.stats.record(start, int64(result.Len()), err)
	return result, err
}

// Exec runs sql discarding any rows. Like Query, a failure leaves the
// Session connected.
func (s *Session) Exec(ctx context.Context, sql string) (binding.ExecResult, error) {
	if err := s.lock(ctx); err != nil {
		return binding.ExecResult{}, err
	}
	defer s.unlock()

	if err := s.checkConnected("exec"); err != nil {
		return binding.ExecResult{}, err
	}

	start := time.Now()
	result, err := binding.Exec(ctx, s.handle, sql)
	s.stats.record(start, 0, err)
	return result, err
}

// Disconnect releases the connection and returns the Session to opened, so
// Connect may be called again. The connection is considered released even
// if the engine reports an error.
func (s *Session) Disconnect(ctx context.Context) error {
	if err := s.lock(ctx); err != nil {
		return err
	}
	defer s.unlock()

	if err := s.checkConnected("disconnect"); err != nil {
		return err
	}

	err := binding.Disconnect(ctx, s.conn)
	s.conn = nil
	s.state.Store(StateOpened)
	return err
}

// Close releases the connection, if any, and then the database. The Session
// is closed afterwards whatever the outcome, and every later operation,
// including another Close, fails with ErrAlreadyClosed. Close ignores the
// cancellation of ctx and waits for a running statement to finish.
func (s *Session) Close(ctx context.Context) error {
	ctx = context.WithoutCancel(ctx)
	if err := s.lock(ctx); err != nil {
		return err
	}
	defer s.unlock()

	switch s.state.Load() {
	case StateClosed:
		return fmt.Errorf("%w: %w", ErrClose, ErrAlreadyClosed)
	case StateUnopened:
		s.state.Store(StateClosed)
		return nil
	}

	err := binding.Close(ctx, s.handle)
	s.handle = nil
	s.conn = nil
	s.state.Store(StateClosed)
	return err
}

// Stats is a snapshot of Session usage counters.
type Stats struct {
	Statements       int64         `json:"statements"`
	FailedStatements int64         `json:"failedStatements"`
	RowsReturned     int64         `json:"rowsReturned"`
	LastDuration     time.Duration `json:"lastDuration"`
	LastStatementAt  time.Time     `json:"lastStatementAt"`
}

type sessionStats struct {
	statements       atomic.Int64
	failedStatements atomic.Int64
	rowsReturned     atomic.Int64
	lastDuration     atomic.Int64
	lastStatementAt  *syncutil.AtomicTime
}

func newSessionStats() *sessionStats {
	return &sessionStats{lastStatementAt: syncutil.NewAtomicTime(time.Time{})}
}

func (st *sessionStats) record(start time.Time, rows int64, err error) {
	st.statements.Add(1)
	if err != nil {
		st.failedStatements.Add(1)
	}
	st.rowsReturned.Add(rows)
	st.lastDuration.Store(int64(time.Since(start)))
	st.lastStatementAt.Store(start)
}

// Stats returns the usage counters of s. Both Query and Exec count as
// statements.
func (s *Session) Stats() Stats {
	return Stats{
		Statements:       s.stats.statements.Load(),
		FailedStatements: s.stats.failedStatements.Load(),
		RowsReturned:     s.stats.rowsReturned.Load(),
		LastDuration:     time.Duration(s.stats.lastDuration.Load()),
		LastStatementAt:  s.stats.lastStatementAt.Load(),
	}
}
