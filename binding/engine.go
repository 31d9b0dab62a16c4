package binding

import (
	"context"
	"database/sql/driver"
	"fmt"
	"sort"
	"sync"

	"github.com/nsqlite/nsduck/rowset"
)

// DefaultEngine is used when Open is called with an empty engine name.
const DefaultEngine = "duckdb"

// Options is the engine configuration for a database. Keys and values are
// handed to the engine verbatim; their meaning is defined by the engine.
type Options map[string]string

// Clone returns a copy of o. A nil Options clones to an empty one.
func (o Options) Clone() Options {
	clone := make(Options, len(o))
	for k, v := range o {
		clone[k] = v
	}
	return clone
}

// Engine opens databases for one native library.
type Engine interface {
	// Connector opens the database at path and returns a connector whose
	// connections all belong to it. Opening errors (bad path, permissions,
	// corruption) must be reported here rather than on first connect.
	Connector(ctx context.Context, path string, options Options) (driver.Connector, error)

	// Exclusive reports whether a database file may be held by a single
	// Handle at a time within the process.
	Exclusive() bool
}

// ValueConverter is implemented by engines whose driver returns values that
// rowset.FromDriver cannot map on its own. ConvertValue receives the engine
// type name of the column and a non-nil value, and reports false to fall
// back to rowset.FromDriver.
type ValueConverter interface {
	ConvertValue(dbType string, src any) (rowset.Value, bool)
}

var (
	enginesMu sync.RWMutex
	engines   = map[string]Engine{}
)

// Register makes an engine available under name. It panics if name is
// already registered or engine is nil.
func Register(name string, engine Engine) {
	enginesMu.Lock()
	defer enginesMu.Unlock()

	if engine == nil {
		panic("binding: Register engine is nil")
	}
	if _, dup := engines[name]; dup {
		panic("binding: Register called twice for engine " + name)
	}
	engines[name] = engine
}

// Lookup returns the engine registered under name.
func Lookup(name string) (Engine, error) {
	enginesMu.RLock()
	defer enginesMu.RUnlock()

	engine, ok := engines[name]
	if !ok {
		return nil, fmt.Errorf("unknown engine %q", name)
	}
	return engine, nil
}

// Engines returns the sorted names of the registered engines.
func Engines() []string {
	enginesMu.RLock()
	defer enginesMu.RUnlock()

	names := make([]string, 0, len(engines))
	for name := range engines {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
