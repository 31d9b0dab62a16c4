package binding

import (
	"math/big"
	"testing"

	"github.com/marcboeker/go-duckdb"
	"github.com/nsqlite/nsduck/rowset"
	"github.com/stretchr/testify/assert"
)

func TestDuckDBConvertValue(t *testing.T) {
	id := []byte{
		0x6b, 0xa7, 0xb8, 0x10, 0x9d, 0xad, 0x11, 0xd1,
		0x80, 0xb4, 0x00, 0xc0, 0x4f, 0xd4, 0x30, 0xc8,
	}

	tests := []struct {
		name   string
		dbType string
		src    any
		want   rowset.Value
		ok     bool
	}{
		{
			name:   "decimal",
			dbType: "DECIMAL(10,2)",
			src:    duckdb.Decimal{Width: 10, Scale: 2, Value: big.NewInt(150)},
			want:   rowset.Float(1.5),
			ok:     true,
		},
		{
			name:   "interval",
			dbType: "INTERVAL",
			src:    duckdb.Interval{Days: 1},
			want:   rowset.Text("1 day"),
			ok:     true,
		},
		{
			name:   "uuid",
			dbType: "UUID",
			src:    id,
			want:   rowset.Text("6ba7b810-9dad-11d1-80b4-00c04fd430c8"),
			ok:     true,
		},
		{
			name:   "blob is left alone",
			dbType: "BLOB",
			src:    id,
		},
		{
			name:   "short uuid is left alone",
			dbType: "UUID",
			src:    []byte{1, 2, 3},
		},
		{
			name:   "integer is left alone",
			dbType: "INTEGER",
			src:    int32(7),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := duckDBEngine{}.ConvertValue(tt.dbType, tt.src)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestFormatInterval(t *testing.T) {
	tests := []struct {
		name string
		iv   duckdb.Interval
		want string
	}{
		{"zero", duckdb.Interval{}, "00:00:00"},
		{"one day", duckdb.Interval{Days: 1}, "1 day"},
		{"days", duckdb.Interval{Days: 3}, "3 days"},
		{"years and months", duckdb.Interval{Months: 14}, "1 year 2 months"},
		{"negative month", duckdb.Interval{Months: -1}, "-1 month"},
		{"clock", duckdb.Interval{Micros: 5400 * 1_000_000}, "01:30:00"},
		{"fraction", duckdb.Interval{Micros: 1_500_000}, "00:00:01.5"},
		{"negative clock", duckdb.Interval{Micros: -61 * 1_000_000}, "-00:01:01"},
		{
			"everything",
			duckdb.Interval{Months: 12, Days: 2, Micros: 3_723_000_000},
			"1 year 2 days 01:02:03",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatInterval(tt.iv))
		})
	}
}
