package binding

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/nsqlite/nsduck/rowset"
)

// Handle is the ownership token of an open database. It carries at most one
// live connection. After Close every operation on it fails with
// ErrInvalidHandle.
type Handle struct {
	engine  string
	path    string
	lockKey string
	db      *sql.DB
	convert rowset.Converter

	// mu is held shared by queries and exclusively by connect, disconnect
	// and close, so a release never runs under an executing statement.
	mu     sync.RWMutex
	conn   *Conn
	closed bool
}

// Conn is a live connection on a Handle.
type Conn struct {
	handle   *Handle
	conn     *sql.Conn
	released bool // guarded by handle.mu
}

// ExecResult is the outcome of Exec.
type ExecResult struct {
	// RowsAffected is -1 when the engine does not report it.
	RowsAffected int64
	Duration     time.Duration
}

// Engine returns the name of the engine that opened h.
func (h *Handle) Engine() string {
	return h.engine
}

// Path returns the database path h was opened with.
func (h *Handle) Path() string {
	return h.path
}

// Valid reports whether h has not been closed.
func (h *Handle) Valid() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return !h.closed
}

// Connected reports whether h has a live connection.
func (h *Handle) Connected() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return !h.closed && h.conn != nil
}

// Handle returns the handle c was created on.
func (c *Conn) Handle() *Handle {
	return c.handle
}

// Valid reports whether c has not been released.
func (c *Conn) Valid() bool {
	c.handle.mu.RLock()
	defer c.handle.mu.RUnlock()
	return !c.released
}

// Open opens the database at path with the named engine. An empty engine
// name selects DefaultEngine. Options are passed to the engine verbatim.
func Open(
	ctx context.Context, engine string, path string, options Options,
) (*Handle, error) {
	if engine == "" {
		engine = DefaultEngine
	}

	eng, err := Lookup(engine)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpen, err)
	}

	lockKey := ""
	if key, ok := pathKey(engine, path); ok && eng.Exclusive() {
		if !acquirePath(key) {
			return nil, fmt.Errorf(
				"%w: database %s is locked by another handle in this process",
				ErrOpen, path,
			)
		}
		lockKey = key
	}

	connector, err := eng.Connector(ctx, path, options.Clone())
	if err != nil {
		if lockKey != "" {
			releasePath(lockKey)
		}
		return nil, fmt.Errorf("%w: %w", ErrOpen, err)
	}

	// One connection at most, never kept idle: releasing the Conn releases
	// the native connection.
	db := sql.OpenDB(connector)
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(0)

	h := &Handle{
		engine:  engine,
		path:    path,
		lockKey: lockKey,
		db:      db,
	}
	if vc, ok := eng.(ValueConverter); ok {
		h.convert = vc.ConvertValue
	}
	return h, nil
}

// Connect establishes the connection of h.
func Connect(ctx context.Context, h *Handle) (*Conn, error) {
	if h == nil {
		return nil, fmt.Errorf("%w: %w", ErrConnect, ErrInvalidHandle)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil, fmt.Errorf("%w: %w", ErrConnect, ErrInvalidHandle)
	}
	if h.conn != nil {
		return nil, fmt.Errorf("%w: handle already has a live connection", ErrConnect)
	}

	sqlConn, err := h.db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnect, err)
	}

	h.conn = &Conn{handle: h, conn: sqlConn}
	return h.conn, nil
}

// Query runs query on the connection of h and materializes every row. A
// failure is returned as a *QueryError and leaves h and its connection
// usable. The statement is not cancelled if ctx ends after dispatch.
func Query(ctx context.Context, h *Handle, query string) (rowset.ResultSet, error) {
	conn, unlock, err := h.acquireConn()
	if err != nil {
		return rowset.ResultSet{}, err
	}
	defer unlock()

	start := time.Now()
	rows, err := conn.QueryContext(context.WithoutCancel(ctx), query)
	if err != nil {
		return rowset.ResultSet{}, newQueryError(query, err)
	}

	result, err := rowset.FromSQLRowsWith(rows, h.convert)
	if err != nil {
		return rowset.ResultSet{}, newQueryError(query, err)
	}
	result.Duration = time.Since(start)

	return result, nil
}

// Exec runs query on the connection of h discarding any rows.
func Exec(ctx context.Context, h *Handle, query string) (ExecResult, error) {
	conn, unlock, err := h.acquireConn()
	if err != nil {
		return ExecResult{}, err
	}
	defer unlock()

	start := time.Now()
	res, err := conn.ExecContext(context.WithoutCancel(ctx), query)
	if err != nil {
		return ExecResult{}, newQueryError(query, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		affected = -1
	}

	return ExecResult{
		RowsAffected: affected,
		Duration:     time.Since(start),
	}, nil
}

// acquireConn read-locks h and returns its live connection. The caller must
// call unlock once the statement is finished.
func (h *Handle) acquireConn() (*sql.Conn, func(), error) {
	if h == nil {
		return nil, nil, ErrInvalidHandle
	}

	h.mu.RLock()
	if h.closed {
		h.mu.RUnlock()
		return nil, nil, ErrInvalidHandle
	}
	if h.conn == nil {
		h.mu.RUnlock()
		return nil, nil, ErrNotConnected
	}
	return h.conn.conn, h.mu.RUnlock, nil
}

// Disconnect releases c. Releasing a connection that is already released,
// directly or by closing its handle, does nothing.
func Disconnect(_ context.Context, c *Conn) error {
	if c == nil {
		return fmt.Errorf("%w: %w", ErrDisconnect, ErrInvalidHandle)
	}

	c.handle.mu.Lock()
	defer c.handle.mu.Unlock()
	return c.handle.releaseConnLocked(c)
}

// releaseConnLocked releases c once. h.mu must be held.
func (h *Handle) releaseConnLocked(c *Conn) error {
	if c.released {
		return nil
	}
	c.released = true
	if h.conn == c {
		h.conn = nil
	}

	if err := c.conn.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrDisconnect, err)
	}
	return nil
}

// Close releases the live connection of h, if any, and then h itself.
// Resources are released even if one of the steps fails. Closing a handle
// twice fails with ErrClose.
func Close(_ context.Context, h *Handle) error {
	if h == nil {
		return fmt.Errorf("%w: %w", ErrClose, ErrInvalidHandle)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return fmt.Errorf("%w: %w", ErrClose, ErrInvalidHandle)
	}
	h.closed = true

	var errs []error
	if h.conn != nil {
		if err := h.releaseConnLocked(h.conn); err != nil {
			errs = append(errs, err)
		}
	}
	if err := h.db.Close(); err != nil {
		errs = append(errs, err)
	}
	if h.lockKey != "" {
		releasePath(h.lockKey)
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrClose, errors.Join(errs...))
	}
	return nil
}
