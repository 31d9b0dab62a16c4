// Package binding is a thin adapter over an embedded database engine.
//
// It exposes the native primitives as free functions over explicit tokens:
// Open returns a *Handle for a database file, Connect returns the single
// *Conn a Handle may carry, Query and Exec run SQL on that connection,
// Disconnect releases the connection and Close releases the Handle together
// with any connection still live.
//
// The package holds no policy. It does not retry, log or reorder anything;
// every engine failure is returned to the caller wrapped in one of the
// sentinel errors. Engines are reached through database/sql connectors and
// chosen by name from a registry; "duckdb" and "sqlite3" are built in.
package binding
