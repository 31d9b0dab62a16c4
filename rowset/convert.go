package rowset

import (
	"fmt"
	"math"
	"math/big"
	"time"
)

// FromDriver converts a value scanned into an *any by database/sql into a
// Value.
//
// Integers of every width become KindInteger, floats KindFloat. Engine
// types without a direct variant (decimals, intervals, nested types) become
// KindFloat when they expose a Float64 method and KindText otherwise, using
// their string form. A type whose Float64 method has a pointer receiver only
// matches when passed by pointer; engines returning such types by value map
// them with a Converter.
func FromDriver(src any) Value {
	switch v := src.(type) {
	case nil:
		return Null()
	case bool:
		return Bool(v)
	case int:
		return Int(int64(v))
	case int8:
		return Int(int64(v))
	case int16:
		return Int(int64(v))
	case int32:
		return Int(int64(v))
	case int64:
		return Int(v)
	case uint8:
		return Int(int64(v))
	case uint16:
		return Int(int64(v))
	case uint32:
		return Int(int64(v))
	case uint:
		if uint64(v) > math.MaxInt64 {
			return Text(fmt.Sprint(v))
		}
		return Int(int64(v))
	case uint64:
		if v > math.MaxInt64 {
			return Text(fmt.Sprint(v))
		}
		return Int(int64(v))
	case float32:
		return Float(float64(v))
	case float64:
		return Float(v)
	case string:
		return Text(v)
	case []byte:
		return Blob(v)
	case time.Time:
		return Timestamp(v)
	case *big.Int:
		if v == nil {
			return Null()
		}
		if v.IsInt64() {
			return Int(v.Int64())
		}
		return Text(v.String())
	case interface{ Float64() float64 }:
		return Float(v.Float64())
	case fmt.Stringer:
		return Text(v.String())
	}
	return Text(fmt.Sprint(src))
}
