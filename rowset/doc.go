// Package rowset holds the engine-neutral representation of query results:
// Value, a scalar variant; Row, an ordered column name to Value mapping; and
// ResultSet, the rows of a single query in engine order.
//
// Values are produced from the driver values of any database/sql engine, so
// nothing here depends on a particular native library.
package rowset
