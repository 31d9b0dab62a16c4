package rowset

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/orsinium-labs/enum"
)

// Kind identifies which variant a Value holds.
type Kind enum.Member[string]

var (
	KindNull      = Kind{Value: "null"}
	KindInteger   = Kind{Value: "integer"}
	KindFloat     = Kind{Value: "float"}
	KindText      = Kind{Value: "text"}
	KindBoolean   = Kind{Value: "boolean"}
	KindBlob      = Kind{Value: "blob"}
	KindTimestamp = Kind{Value: "timestamp"}

	Kinds = enum.New(
		KindNull, KindInteger, KindFloat, KindText,
		KindBoolean, KindBlob, KindTimestamp,
	)
)

// String returns the kind name.
func (k Kind) String() string {
	return k.Value
}

// Value is a single scalar cell of a Row. The zero Value is NULL.
type Value struct {
	kind Kind
	i    int64
	f    float64
	s    string
	b    bool
	blob []byte
	t    time.Time
}

// Null returns a NULL value.
func Null() Value { return Value{kind: KindNull} }

// Int returns an integer value.
func Int(i int64) Value { return Value{kind: KindInteger, i: i} }

// Float returns a floating point value.
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

// Text returns a text value.
func Text(s string) Value { return Value{kind: KindText, s: s} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBoolean, b: b} }

// Blob returns a blob value holding a copy of b.
func Blob(b []byte) Value { return Value{kind: KindBlob, blob: bytes.Clone(b)} }

// Timestamp returns a timestamp value.
func Timestamp(t time.Time) Value { return Value{kind: KindTimestamp, t: t} }

// Kind returns the variant held by v.
func (v Value) Kind() Kind {
	if v.kind.Value == "" {
		return KindNull
	}
	return v.kind
}

// IsNull reports whether v is NULL.
func (v Value) IsNull() bool {
	return v.Kind() == KindNull
}

// Int64 returns the integer held by v.
func (v Value) Int64() (int64, bool) {
	if v.kind != KindInteger {
		return 0, false
	}
	return v.i, true
}

// Float64 returns v as a float64. Integers are widened.
func (v Value) Float64() (float64, bool) {
	switch v.kind {
	case KindFloat:
		return v.f, true
	case KindInteger:
		return float64(v.i), true
	}
	return 0, false
}

// Text returns the string held by v.
func (v Value) Text() (string, bool) {
	if v.kind != KindText {
		return "", false
	}
	return v.s, true
}

// Bool returns the boolean held by v.
func (v Value) Bool() (bool, bool) {
	if v.kind != KindBoolean {
		return false, false
	}
	return v.b, true
}

// Bytes returns a copy of the blob held by v.
func (v Value) Bytes() ([]byte, bool) {
	if v.kind != KindBlob {
		return nil, false
	}
	return bytes.Clone(v.blob), true
}

// Time returns the timestamp held by v.
func (v Value) Time() (time.Time, bool) {
	if v.kind != KindTimestamp {
		return time.Time{}, false
	}
	return v.t, true
}

// Any returns v as a plain Go value: nil, int64, float64, string, bool,
// []byte or time.Time.
func (v Value) Any() any {
	switch v.Kind() {
	case KindInteger:
		return v.i
	case KindFloat:
		return v.f
	case KindText:
		return v.s
	case KindBoolean:
		return v.b
	case KindBlob:
		return bytes.Clone(v.blob)
	case KindTimestamp:
		return v.t
	}
	return nil
}

// Equal reports whether v and o hold the same kind and value. Timestamps
// compare with time.Time.Equal.
func (v Value) Equal(o Value) bool {
	if v.Kind() != o.Kind() {
		return false
	}
	switch v.Kind() {
	case KindInteger:
		return v.i == o.i
	case KindFloat:
		return v.f == o.f
	case KindText:
		return v.s == o.s
	case KindBoolean:
		return v.b == o.b
	case KindBlob:
		return bytes.Equal(v.blob, o.blob)
	case KindTimestamp:
		return v.t.Equal(o.t)
	}
	return true
}

// String formats v for display. NULL renders as "NULL".
func (v Value) String() string {
	switch v.Kind() {
	case KindInteger:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindText:
		return v.s
	case KindBoolean:
		return strconv.FormatBool(v.b)
	case KindBlob:
		return fmt.Sprintf("x'%x'", v.blob)
	case KindTimestamp:
		return v.t.Format(time.RFC3339Nano)
	}
	return "NULL"
}

// MarshalJSON encodes blobs as base64 strings and timestamps as RFC 3339.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind() {
	case KindBlob:
		return json.Marshal(base64.StdEncoding.EncodeToString(v.blob))
	case KindTimestamp:
		return json.Marshal(v.t.Format(time.RFC3339Nano))
	}
	return json.Marshal(v.Any())
}
