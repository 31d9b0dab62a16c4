package rowset

import (
	"database/sql"
	"fmt"
	"time"
)

// ResultSet is the materialized output of one query: its column names and
// its rows in the order the engine returned them. It holds no reference to
// engine memory.
type ResultSet struct {
	Columns  []string      `json:"columns"`
	Rows     []Row         `json:"rows"`
	Duration time.Duration `json:"duration"`
}

// Len returns the number of rows.
func (rs ResultSet) Len() int {
	return len(rs.Rows)
}

// Empty reports whether the result has no rows.
func (rs ResultSet) Empty() bool {
	return len(rs.Rows) == 0
}

// Column returns the values of the named column across all rows.
func (rs ResultSet) Column(name string) ([]Value, bool) {
	values := make([]Value, 0, len(rs.Rows))
	for _, row := range rs.Rows {
		v, ok := row.Get(name)
		if !ok {
			return nil, false
		}
		values = append(values, v)
	}
	return values, true
}

// Converter maps a driver value of a column whose engine type name is
// dbType. It reports false to leave the value to FromDriver.
type Converter func(dbType string, src any) (Value, bool)

// FromSQLRows reads every row of rows, converts each cell with FromDriver,
// and closes rows. Only the first result set of rows is consumed.
func FromSQLRows(rows *sql.Rows) (ResultSet, error) {
	return FromSQLRowsWith(rows, nil)
}

// FromSQLRowsWith is FromSQLRows with cells offered to convert first. A nil
// convert behaves like FromSQLRows.
func FromSQLRowsWith(rows *sql.Rows, convert Converter) (ResultSet, error) {
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return ResultSet{}, fmt.Errorf("failed to get columns: %w", err)
	}

	dbTypes := make([]string, len(columns))
	if convert != nil {
		colTypes, err := rows.ColumnTypes()
		if err != nil {
			return ResultSet{}, fmt.Errorf("failed to get column types: %w", err)
		}
		for i, ct := range colTypes {
			dbTypes[i] = ct.DatabaseTypeName()
		}
	}

	hdr := newHeader(columns)
	result := ResultSet{
		Columns: append([]string(nil), hdr.names...),
		Rows:    []Row{},
	}

	raw := make([]any, len(columns))
	scans := make([]any, len(columns))
	for i := range scans {
		scans[i] = &raw[i]
	}

	for rows.Next() {
		if err := rows.Scan(scans...); err != nil {
			return ResultSet{}, fmt.Errorf("failed to scan row: %w", err)
		}

		values := make([]Value, len(columns))
		for i := range raw {
			values[i] = convertCell(convert, dbTypes[i], raw[i])
			raw[i] = nil
		}
		result.Rows = append(result.Rows, Row{header: hdr, values: values})
	}
	if err := rows.Err(); err != nil {
		return ResultSet{}, fmt.Errorf("failed to iterate rows: %w", err)
	}

	return result, nil
}

func convertCell(convert Converter, dbType string, src any) Value {
	if convert != nil && src != nil {
		if v, ok := convert(dbType, src); ok {
			return v
		}
	}
	return FromDriver(src)
}
