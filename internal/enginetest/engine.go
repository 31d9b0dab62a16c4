// Package enginetest provides an in-process binding.Engine with canned
// results and release counters, for tests of code built on the binding.
package enginetest

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/nsqlite/nsduck/binding"
)

// Result is the canned answer to one SQL text.
type Result struct {
	Columns []string
	Rows    [][]driver.Value
	Err     error
}

// Counters reports how many native resources the engine handed out and
// got back.
type Counters struct {
	DatabasesOpened      int64
	DatabasesClosed      int64
	ConnectionsOpened    int64
	ConnectionsClosed    int64
	StatementsDispatched int64
}

// Engine is a fake engine. Set FailOpen or FailConnect to make the
// corresponding primitive fail.
type Engine struct {
	mu          sync.Mutex
	results     map[string]Result
	failOpen    error
	failConnect error

	databasesOpened      int64
	databasesClosed      int64
	connectionsOpened    int64
	connectionsClosed    int64
	statementsDispatched int64
}

// New returns an Engine with no canned results.
func New() *Engine {
	return &Engine{results: map[string]Result{}}
}

// Register registers e under a unique name and returns the name.
func Register(t testing.TB, e *Engine) string {
	t.Helper()
	name := "fake-" + uuid.NewString()
	binding.Register(name, e)
	return name
}

// SetResult makes query return the given columns and rows.
func (e *Engine) SetResult(query string, columns []string, rows ...[]driver.Value) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.results[query] = Result{Columns: columns, Rows: rows}
}

// SetError makes query fail with err.
func (e *Engine) SetError(query string, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.results[query] = Result{Err: err}
}

// FailOpen makes every following open fail with err; nil restores it.
func (e *Engine) FailOpen(err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.failOpen = err
}

// FailConnect makes every following connect fail with err; nil restores it.
func (e *Engine) FailConnect(err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.failConnect = err
}

// Counters returns a snapshot of the resource counters.
func (e *Engine) Counters() Counters {
	return Counters{
		DatabasesOpened:      atomic.LoadInt64(&e.databasesOpened),
		DatabasesClosed:      atomic.LoadInt64(&e.databasesClosed),
		ConnectionsOpened:    atomic.LoadInt64(&e.connectionsOpened),
		ConnectionsClosed:    atomic.LoadInt64(&e.connectionsClosed),
		StatementsDispatched: atomic.LoadInt64(&e.statementsDispatched),
	}
}

func (e *Engine) Connector(
	_ context.Context, path string, _ binding.Options,
) (driver.Connector, error) {
	e.mu.Lock()
	failOpen := e.failOpen
	e.mu.Unlock()

	if failOpen != nil {
		return nil, failOpen
	}
	atomic.AddInt64(&e.databasesOpened, 1)
	return &connector{engine: e, path: path}, nil
}

func (e *Engine) Exclusive() bool {
	return true
}

func (e *Engine) lookup(query string) Result {
	e.mu.Lock()
	defer e.mu.Unlock()

	res, ok := e.results[query]
	if !ok {
		return Result{Err: fmt.Errorf("Parser Error: syntax error at or near %q", query)}
	}
	return res
}

var (
	_ driver.Connector      = (*connector)(nil)
	_ io.Closer             = (*connector)(nil)
	_ driver.Conn           = (*conn)(nil)
	_ driver.QueryerContext = (*conn)(nil)
	_ driver.ExecerContext  = (*conn)(nil)
	_ driver.Rows           = (*rows)(nil)
)

type connector struct {
	engine *Engine
	path   string
	closed int32
}

func (c *connector) Connect(context.Context) (driver.Conn, error) {
	c.engine.mu.Lock()
	failConnect := c.engine.failConnect
	c.engine.mu.Unlock()

	if failConnect != nil {
		return nil, failConnect
	}
	atomic.AddInt64(&c.engine.connectionsOpened, 1)
	return &conn{engine: c.engine}, nil
}

func (c *connector) Driver() driver.Driver {
	return fakeDriver{}
}

func (c *connector) Close() error {
	if !atomic.CompareAndSwapInt32(&c.closed, 0, 1) {
		return errors.New("database closed twice")
	}
	atomic.AddInt64(&c.engine.databasesClosed, 1)
	return nil
}

type fakeDriver struct{}

func (fakeDriver) Open(string) (driver.Conn, error) {
	return nil, errors.New("enginetest: use a connector")
}

type conn struct {
	engine *Engine
	closed bool
}

func (c *conn) Prepare(string) (driver.Stmt, error) {
	return nil, errors.New("enginetest: prepared statements are not supported")
}

func (c *conn) Begin() (driver.Tx, error) {
	return nil, errors.New("enginetest: transactions are not supported")
}

func (c *conn) Close() error {
	if c.closed {
		return errors.New("connection closed twice")
	}
	c.closed = true
	atomic.AddInt64(&c.engine.connectionsClosed, 1)
	return nil
}

func (c *conn) QueryContext(
	_ context.Context, query string, _ []driver.NamedValue,
) (driver.Rows, error) {
	atomic.AddInt64(&c.engine.statementsDispatched, 1)
	res := c.engine.lookup(query)
	if res.Err != nil {
		return nil, res.Err
	}
	return &rows{columns: res.Columns, values: res.Rows}, nil
}

func (c *conn) ExecContext(
	_ context.Context, query string, _ []driver.NamedValue,
) (driver.Result, error) {
	atomic.AddInt64(&c.engine.statementsDispatched, 1)
	res := c.engine.lookup(query)
	if res.Err != nil {
		return nil, res.Err
	}
	return driver.RowsAffected(len(res.Rows)), nil
}

type rows struct {
	columns []string
	values  [][]driver.Value
	pos     int
}

func (r *rows) Columns() []string {
	return r.columns
}

func (r *rows) Close() error {
	return nil
}

func (r *rows) Next(dest []driver.Value) error {
	if r.pos >= len(r.values) {
		return io.EOF
	}
	copy(dest, r.values[r.pos])
	r.pos++
	return nil
}
