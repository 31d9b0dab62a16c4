package binding

import (
	"context"
	"database/sql/driver"
	"fmt"
	"net/url"
	"strings"

	"github.com/mattn/go-sqlite3"
)

func init() {
	Register("sqlite3", sqliteEngine{})
}

// accessModeKey is shared with DuckDB so callers can request a read-only
// database the same way on both engines.
const accessModeKey = "access_mode"

// sqliteEngine opens SQLite databases through mattn/go-sqlite3. Options are
// passed as URI parameters (mode, cache, _journal_mode, _busy_timeout, ...).
type sqliteEngine struct{}

func (sqliteEngine) Connector(
	_ context.Context, path string, options Options,
) (driver.Connector, error) {
	connector := newSQLiteConnector(path, options)

	// go-sqlite3 opens lazily; open one connection now so a bad path is
	// reported by Open and not by the first Connect.
	conn, err := connector.Connect(context.Background())
	if err != nil {
		return nil, err
	}
	if err := conn.Close(); err != nil {
		return nil, err
	}

	return connector, nil
}

func (sqliteEngine) Exclusive() bool {
	return false
}

type sqliteConnector struct {
	driver             driver.Driver
	dsn                string
	postConnectQueries []string
}

func newSQLiteConnector(path string, options Options) *sqliteConnector {
	dsn, readOnly := createSQLiteDSN(path, options)

	postConnectQueries := []string{}
	if readOnly {
		postConnectQueries = append(postConnectQueries, "PRAGMA QUERY_ONLY = true;")
	}

	return &sqliteConnector{
		driver:             &sqlite3.SQLiteDriver{},
		dsn:                dsn,
		postConnectQueries: postConnectQueries,
	}
}

// createSQLiteDSN returns the "file:" URI for path and whether the caller
// asked for a read-only database. The path is percent-encoded; SQLite
// decodes it back when opening.
func createSQLiteDSN(path string, options Options) (string, bool) {
	qp := url.Values{}
	qp.Set("_foreign_keys", "true")
	qp.Set("_busy_timeout", "5000")

	readOnly := false
	for k, v := range options {
		if k == accessModeKey {
			readOnly = strings.EqualFold(v, "read_only")
			continue
		}
		qp.Set(k, v)
	}

	if path == "" {
		path = ":memory:"
	}
	escaped := (&url.URL{Path: path}).EscapedPath()
	return fmt.Sprintf("file:%s?%s", escaped, qp.Encode()), readOnly
}

// Connect opens a new SQLite connection and runs the post-connect queries.
func (c *sqliteConnector) Connect(context.Context) (driver.Conn, error) {
	conn, err := c.driver.Open(c.dsn)
	if err != nil {
		return nil, err
	}

	for _, query := range c.postConnectQueries {
		if err := sqliteExec(conn, query); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf(`failed to execute "%s" post-connect query: %w`, query, err)
		}
	}

	return conn, nil
}

func (c *sqliteConnector) Driver() driver.Driver {
	return c.driver
}

func sqliteExec(conn driver.Conn, query string) error {
	stmt, err := conn.Prepare(query)
	if err != nil {
		return err
	}
	defer stmt.Close()

	_, err = stmt.Exec(nil)
	return err
}
