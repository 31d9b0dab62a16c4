package binding

import (
	"context"
	"database/sql/driver"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/marcboeker/go-duckdb"
	"github.com/nsqlite/nsduck/rowset"
)

func init() {
	Register("duckdb", duckDBEngine{})
}

// duckDBEngine opens DuckDB databases. Options become DuckDB configuration
// settings (access_mode, threads, max_memory, ...) through the DSN.
type duckDBEngine struct{}

func (duckDBEngine) Connector(
	_ context.Context, path string, options Options,
) (driver.Connector, error) {
	// NewConnector runs duckdb_open_ext, so open failures surface here.
	connector, err := duckdb.NewConnector(duckDBDSN(path, options), nil)
	if err != nil {
		return nil, err
	}
	return connector, nil
}

func (duckDBEngine) Exclusive() bool {
	return true
}

// ConvertValue maps the go-duckdb types that have no rowset variant.
// DECIMAL becomes KindFloat, INTERVAL and UUID become KindText.
func (duckDBEngine) ConvertValue(dbType string, src any) (rowset.Value, bool) {
	switch v := src.(type) {
	case duckdb.Decimal:
		return rowset.Float(v.Float64()), true
	case duckdb.Interval:
		return rowset.Text(formatInterval(v)), true
	case []byte:
		if dbType != "UUID" {
			return rowset.Value{}, false
		}
		id, err := uuid.FromBytes(v)
		if err != nil {
			return rowset.Value{}, false
		}
		return rowset.Text(id.String()), true
	}
	return rowset.Value{}, false
}

// formatInterval renders iv the way DuckDB prints intervals, for example
// "1 year 2 months 3 days 04:05:06.5".
func formatInterval(iv duckdb.Interval) string {
	var parts []string
	if years := iv.Months / 12; years != 0 {
		parts = append(parts, intervalPart(int64(years), "year"))
	}
	if months := iv.Months % 12; months != 0 {
		parts = append(parts, intervalPart(int64(months), "month"))
	}
	if iv.Days != 0 {
		parts = append(parts, intervalPart(int64(iv.Days), "day"))
	}
	if iv.Micros != 0 || len(parts) == 0 {
		parts = append(parts, intervalClock(iv.Micros))
	}
	return strings.Join(parts, " ")
}

func intervalPart(n int64, unit string) string {
	if n == 1 || n == -1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

func intervalClock(micros int64) string {
	sign := ""
	if micros < 0 {
		sign = "-"
		micros = -micros
	}

	const second = 1_000_000
	hours := micros / (3600 * second)
	minutes := micros / (60 * second) % 60
	seconds := micros / second % 60
	frac := micros % second

	clock := fmt.Sprintf("%s%02d:%02d:%02d", sign, hours, minutes, seconds)
	if frac != 0 {
		clock += strings.TrimRight(fmt.Sprintf(".%06d", frac), "0")
	}
	return clock
}

// duckDBDSN builds "path?key=value&..." from the options. go-duckdb parses
// the DSN as a URL and opens an in-memory database for an empty path, so
// memory paths are sent as "".
func duckDBDSN(path string, options Options) string {
	if isMemoryPath(path) {
		path = ""
	}
	if len(options) == 0 {
		return path
	}

	qp := url.Values{}
	for k, v := range options {
		qp.Set(k, v)
	}
	return path + "?" + qp.Encode()
}
